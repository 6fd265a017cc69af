package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/samadhi-app/record-service/pkg/util/errorutil"
)

func TestAuthorizeOwner(t *testing.T) {
	tests := []struct {
		name     string
		callerID string
		ownerID  string
		allowed  bool
	}{
		{"owner allowed", "alice", "alice", true},
		{"other user denied", "bob", "alice", false},
		{"reverse pair denied", "alice", "bob", false},
		{"empty caller denied", "", "alice", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeOwner(tt.callerID, tt.ownerID)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			domainErr := apperrors.ToDomainError(err)
			assert.Equal(t, 403, domainErr.HTTPStatus)
		})
	}
}
