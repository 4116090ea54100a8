package identity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"Simple", "user@example.com", "user@example.com", false},
		{"Uppercase", "User@Example.COM", "user@example.com", false},
		{"Padded", "  user@example.com\n", "user@example.com", false},
		{"MissingAt", "user.example.com", "", true},
		{"MissingLocal", "@example.com", "", true},
		{"MissingDomain", "user@", "", true},
		{"DoubleAt", "a@b@c", "", true},
		{"InnerSpace", "us er@example.com", "", true},
		{"Empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateEmail(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidEmail))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInviteStatus(t *testing.T) {
	status, err := ParseInviteStatus("Pending")
	assert.NoError(t, err)
	assert.Equal(t, InviteStatusPending, status)

	_, err = ParseInviteStatus("rejected")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestMatchesWorkspaceName(t *testing.T) {
	tests := []struct {
		workspace string
		member    string
		want      bool
	}{
		{"Jane Doe", "Jane Doe", true},
		{"janedoe-workspace", "Jane Doe", true},
		{"JANE  DOE", "jane doe", true},
		{"John Doe", "Jane Doe", false},
		{"Default", "", false},
		// Known false positive of the substring heuristic.
		{"Joanna Smith", "Ann", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchesWorkspaceName(tt.workspace, tt.member), "%q vs %q", tt.workspace, tt.member)
	}
}

func TestRedactKey(t *testing.T) {
	assert.Equal(t, "", RedactKey(""))
	assert.Equal(t, "...abcd", RedactKey("xyabcd"))
	assert.Equal(t, "sk-a...wxyz", RedactKey("sk-abcdefghijklmnopqrstuvwxyz"))
}

func TestKeyHint(t *testing.T) {
	assert.Equal(t, "sk-...abcd", KeyHint("sk-...abcd"))
	assert.Equal(t, "sk-ant-api03-****wxyz", KeyHint("sk-ant-api03-****wxyz"))
	assert.Equal(t, "sk-a...wxyz", KeyHint("sk-abcdefghijklmnopqrstuvwxyz"))
	assert.Equal(t, "", KeyHint(""))
}

func TestIdentity_HasProvider(t *testing.T) {
	id := Identity{Email: "a@x.com", Providers: []ProviderMembership{{Name: "openai"}}}
	assert.True(t, id.HasProvider("openai"))
	assert.False(t, id.HasProvider("anthropic"))
}
