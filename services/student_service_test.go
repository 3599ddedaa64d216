package services

import (
	"context"
	"testing"

	"unibordima/dto"
	"unibordima/errors"
	"unibordima/models"
	"unibordima/testutil"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerInput(email string) dto.RegisterInput {
	return dto.RegisterInput{
		FirstName:  "Kasun",
		LastName:   "Silva",
		Email:      email,
		Password:   "secret123",
		University: "University of Colombo",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, student, err := f.students.Register(ctx, registerInput("  Kasun@Example.COM "))
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "kasun@example.com", student.Email)
	assert.NotEqual(t, "secret123", student.Password)

	claims, err := f.tokens.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, student.ID, claims.ID)
	assert.Equal(t, models.RoleStudent, claims.Role)

	token, loggedIn, err := f.students.Login(ctx, dto.LoginInput{Email: "KASUN@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, student.ID, loggedIn.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.students.Register(ctx, registerInput("dup@example.com"))
	require.NoError(t, err)

	_, _, err = f.students.Register(ctx, registerInput("DUP@example.com"))
	assert.ErrorIs(t, err, errors.ErrConflict)
	assert.Equal(t, 409, errors.HTTPStatus(err))
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)

	in := registerInput("short@example.com")
	in.Password = "123"
	_, _, err := f.students.Register(context.Background(), in)
	assert.ErrorIs(t, err, errors.ErrValidation)

	in = registerInput("not-an-email")
	_, _, err = f.students.Register(context.Background(), in)
	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _, err := f.students.Register(ctx, registerInput("user@example.com"))
	require.NoError(t, err)

	_, _, err = f.students.Login(ctx, dto.LoginInput{Email: "user@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, errors.ErrUnauthorized)
	assert.Equal(t, "Invalid credentials", errors.GetAppError(err).Message)

	// Email không tồn tại trả cùng thông báo
	_, _, err = f.students.Login(ctx, dto.LoginInput{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, errors.ErrUnauthorized)
	assert.Equal(t, "Invalid credentials", errors.GetAppError(err).Message)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := testutil.NewStudent(t, f.db, "profile@example.com")

	updated, err := f.students.UpdateProfile(ctx, student.ID, dto.UpdateProfileInput{
		PhoneNumber: ptr("+94770001111"),
		University:  ptr(" SLIIT "),
	})
	require.NoError(t, err)
	assert.Equal(t, "SLIIT", updated.University)
	assert.Equal(t, "Nimal", updated.FirstName)

	var stored models.Student
	require.NoError(t, f.db.First(&stored, student.ID).Error)
	assert.Equal(t, "+94770001111", stored.PhoneNumber)
	assert.Equal(t, "profile@example.com", stored.Email)

	_, err = f.students.UpdateProfile(ctx, student.ID, dto.UpdateProfileInput{FirstName: ptr("   ")})
	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestSavedListings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := testutil.NewStudent(t, f.db, "saver@example.com")
	first := testutil.NewListing(t, f.db, nil)
	second := testutil.NewListing(t, f.db, nil)

	require.NoError(t, f.students.SaveListing(ctx, student.ID, first.ID))
	require.NoError(t, f.students.SaveListing(ctx, student.ID, second.ID))

	err := f.students.SaveListing(ctx, student.ID, first.ID)
	assert.ErrorIs(t, err, errors.ErrConflict)

	err = f.students.SaveListing(ctx, student.ID, 999)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	profile, err := f.students.GetProfile(ctx, student.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{first.ID, second.ID}, listIDs(profile.SavedListings))

	require.NoError(t, f.students.RemoveSavedListing(ctx, student.ID, first.ID))
	err = f.students.RemoveSavedListing(ctx, student.ID, first.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	profile, err = f.students.GetProfile(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{second.ID}, listIDs(profile.SavedListings))
}

func TestStudent_SavedListingsAlwaysArray(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, registered, err := f.students.Register(ctx, registerInput("fresh@example.com"))
	require.NoError(t, err)
	assert.NotNil(t, registered.SavedListings)

	_, loggedIn, err := f.students.Login(ctx, dto.LoginInput{Email: "fresh@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotNil(t, loggedIn.SavedListings)

	profile, err := f.students.GetProfile(ctx, registered.ID)
	require.NoError(t, err)
	data, err := json.Marshal(profile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"savedListings":[]`)

	students, err := f.admins.ListStudents(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.NotNil(t, students[0].SavedListings)
}

func TestGetProfile_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.students.GetProfile(context.Background(), 12)

	assert.ErrorIs(t, err, errors.ErrNotFound)
}
