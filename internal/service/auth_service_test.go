package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examportal/internal/model"
)

func TestLoginAndValidate(t *testing.T) {
	svc := NewAuthService()

	resp, err := svc.Login("teacher", "teacher123")
	require.NoError(t, err)
	assert.Equal(t, model.RoleTeacher, resp.Role)
	assert.Equal(t, "t-01", resp.UserID)
	require.NotEmpty(t, resp.Token)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "t-01", claims.UserID)
	assert.Equal(t, model.RoleTeacher, claims.Role)
}

func TestLoginStudent(t *testing.T) {
	svc := NewAuthService()

	resp, err := svc.Login("alice", "alice123")
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, resp.Role)
	assert.Equal(t, "s-01", resp.UserID)
	assert.Equal(t, "Alice Kumar", resp.Name)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewAuthService()

	_, err := svc.Login("teacher", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody", "teacher123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService()

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTeacherCredentialsFromEnv(t *testing.T) {
	t.Setenv("TEACHER_USERNAME", "prof")
	t.Setenv("TEACHER_PASSWORD", "prof-pass")

	svc := NewAuthService()

	_, err := svc.Login("teacher", "teacher123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	resp, err := svc.Login("prof", "prof-pass")
	require.NoError(t, err)
	assert.Equal(t, model.RoleTeacher, resp.Role)
}
