package contact_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/localized-content/pkg/localizedcontent"
	"github.com/tendant/localized-content/pkg/portfolio/contact"
	"github.com/tendant/localized-content/pkg/portfolio/contact/store/memory"
)

func newTestService(t *testing.T) *contact.Service {
	t.Helper()
	return contact.NewService(memory.New())
}

func strptr(s string) *string { return &s }

func TestContactLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Get(ctx)
	assert.ErrorIs(t, err, contact.ErrContactNotFound)

	created, err := svc.Create(ctx, contact.CreateRequest{
		Email:       "jane@example.com",
		Phone:       strptr("+34 600 000 000"),
		SocialLinks: contact.SocialLinks{"github": "https://github.com/jane"},
	})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", created.Email)

	t.Run("second create conflicts", func(t *testing.T) {
		_, err := svc.Create(ctx, contact.CreateRequest{Email: "other@example.com"})
		assert.ErrorIs(t, err, contact.ErrContactExists)
	})

	t.Run("get returns the record", func(t *testing.T) {
		got, err := svc.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "https://github.com/jane", got.SocialLinks["github"])
	})

	t.Run("patch picks defined fields", func(t *testing.T) {
		updated, err := svc.Update(ctx, contact.Patch{Email: strptr("jane@new.example")})
		require.NoError(t, err)
		assert.Equal(t, "jane@new.example", updated.Email)
		require.NotNil(t, updated.Phone, "untouched fields survive")
	})

	t.Run("patch clears the phone", func(t *testing.T) {
		var cleared *string
		updated, err := svc.Update(ctx, contact.Patch{Phone: &cleared})
		require.NoError(t, err)
		assert.Nil(t, updated.Phone)
	})

	t.Run("empty email rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, contact.Patch{Email: strptr("")})
		assert.ErrorIs(t, err, localizedcontent.ErrValidation)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx))
		require.NoError(t, svc.Delete(ctx))
		_, err := svc.Get(ctx)
		assert.ErrorIs(t, err, contact.ErrContactNotFound)
	})
}

func TestCreateRequiresEmail(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Create(context.Background(), contact.CreateRequest{})
	assert.ErrorIs(t, err, localizedcontent.ErrValidation)
}

func TestUpdateWithoutRecord(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Update(context.Background(), contact.Patch{Email: strptr("a@b.c")})
	assert.ErrorIs(t, err, contact.ErrContactNotFound)
}

func TestPatchUnmarshal(t *testing.T) {
	t.Run("explicit null clears the phone", func(t *testing.T) {
		var p contact.Patch
		require.NoError(t, json.Unmarshal([]byte(`{"phone": null}`), &p))
		require.NotNil(t, p.Phone)
		assert.Nil(t, *p.Phone)
	})

	t.Run("absent phone stays untouched", func(t *testing.T) {
		var p contact.Patch
		require.NoError(t, json.Unmarshal([]byte(`{"email": "a@b.c"}`), &p))
		assert.Nil(t, p.Phone)
	})
}
