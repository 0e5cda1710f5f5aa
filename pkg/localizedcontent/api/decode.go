package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/tendant/localized-content/pkg/localizedcontent"
)

// maxUploadBytes bounds in-memory multipart parsing.
const maxUploadBytes = 32 << 20

// requestBody is the decoded shape shared by all write endpoints. JSON
// requests carry only data; multipart requests put the JSON payload in the
// "data" field, General asset files under "assets" and the translation
// document under "document".
type requestBody struct {
	data     []byte
	assets   []localizedcontent.AssetFile
	document *localizedcontent.AssetFile
}

func decodeBody(r *http.Request) (*requestBody, error) {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		data, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
		return &requestBody{data: data}, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	body := &requestBody{data: []byte(r.FormValue("data"))}

	for _, header := range r.MultipartForm.File["assets"] {
		file, err := readFile(header)
		if err != nil {
			return nil, err
		}
		body.assets = append(body.assets, *file)
	}

	if headers := r.MultipartForm.File["document"]; len(headers) > 0 {
		file, err := readFile(headers[0])
		if err != nil {
			return nil, err
		}
		body.document = file
	}

	return body, nil
}

func readFile(header *multipart.FileHeader) (*localizedcontent.AssetFile, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file %s: %w", header.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file %s: %w", header.Filename, err)
	}

	return &localizedcontent.AssetFile{
		Data:     data,
		FileName: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
	}, nil
}
