package validation

import (
	"errors"
	"testing"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() domain.ListingForm {
	return domain.ListingForm{
		Name:        "Ирина",
		Phone:       "+79111234567",
		Email:       "ira@example.com",
		Kind:        "кошка",
		District:    "Невский",
		Description: "Рыжая, откликается на Мусю",
		Photo1:      &domain.Photo{FileName: "cat.png", Data: []byte{1}},
		Confirm:     true,
	}
}

func TestListingRequiresPhotoOnCreate(t *testing.T) {
	form := validForm()
	form.Photo1 = nil

	err := Listing(form, true)
	require.Error(t, err)
	var errs Errors
	require.True(t, errors.As(err, &errs))
	assert.Contains(t, errs, "photo1")
	assert.Len(t, errs, 1)

	assert.NoError(t, Listing(form, false))
}

func TestListingRejectsBadPhotoExtension(t *testing.T) {
	form := validForm()
	form.Photo2 = &domain.Photo{FileName: "doc.pdf", Data: []byte{1}}
	err := Listing(form, true)
	require.Error(t, err)
	assert.Contains(t, err.(Errors), "photo2")
}

func TestValidListing(t *testing.T) {
	assert.NoError(t, Listing(validForm(), true))
}

func TestLogin(t *testing.T) {
	assert.NoError(t, Login("user@example.com", "x"))
	assert.NoError(t, Login("+79111234567", "x"))
	assert.Error(t, Login("", "x"))
	assert.Error(t, Login("user@", "x"))
	assert.Error(t, Login("8-911-123", "x"))
	assert.Error(t, Login("+79111234567", ""))
}

func TestRegistration(t *testing.T) {
	ok := domain.Registration{
		Name: "Анна-Мария", Phone: "89111234567", Email: "a@b.ru",
		Password: "Secret1x", PasswordConfirmation: "Secret1x", Confirm: true,
	}
	assert.NoError(t, Registration(ok))

	bad := ok
	bad.Name = "Anna"
	bad.PasswordConfirmation = "other"
	bad.Confirm = false
	err := Registration(bad)
	require.Error(t, err)
	errs := err.(Errors)
	assert.Len(t, errs, 3)
	assert.Equal(t, 3, len(splitLines(errs.Message())))
}

func TestValidPassword(t *testing.T) {
	assert.True(t, ValidPassword("Abcdef1"))
	assert.False(t, ValidPassword("Abcde1"))
	assert.False(t, ValidPassword("abcdefg1"))
	assert.False(t, ValidPassword("ABCDEFG1"))
	assert.False(t, ValidPassword("Abcdefgh"))
}

func TestProfilePatchOnlyChecksPresentFields(t *testing.T) {
	phone := "+79111234567"
	assert.NoError(t, ProfilePatch(domain.ProfilePatch{Phone: &phone}))
	email := "nope"
	assert.Error(t, ProfilePatch(domain.ProfilePatch{Phone: &phone, Email: &email}))
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}
