package authz

import (
	"testing"

	"chirp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanAccessUser(t *testing.T) {
	t.Parallel()

	staff := &Actor{ID: 1, IsStaff: true}
	owner := &Actor{ID: 7}
	other := &Actor{ID: 8}

	tests := []struct {
		name     string
		actor    *Actor
		action   Action
		targetID uint
		wantCode string
	}{
		{"unauthenticated signup allowed", nil, ActionCreate, 0, ""},
		{"authenticated signup allowed", other, ActionCreate, 0, ""},
		{"unauthenticated list denied", nil, ActionList, 0, models.CodeUnauthenticated},
		{"non-staff list forbidden", other, ActionList, 0, models.CodeForbidden},
		{"staff list allowed", staff, ActionList, 0, ""},
		{"owner read allowed", owner, ActionRead, 7, ""},
		{"other read forbidden", other, ActionRead, 7, models.CodeForbidden},
		{"staff read allowed", staff, ActionRead, 7, ""},
		{"owner update allowed", owner, ActionUpdate, 7, ""},
		{"other update forbidden", other, ActionUpdate, 7, models.CodeForbidden},
		{"owner delete allowed", owner, ActionDelete, 7, ""},
		{"staff delete allowed", staff, ActionDelete, 7, ""},
		{"unauthenticated read denied", nil, ActionRead, 7, models.CodeUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanAccessUser(tt.actor, tt.action, tt.targetID)
			if tt.wantCode == "" {
				assert.Nil(t, err)
			} else {
				require.NotNil(t, err)
				assert.Equal(t, tt.wantCode, err.Code)
			}
		})
	}
}

func TestCanAccessPost(t *testing.T) {
	t.Parallel()

	author := &Actor{ID: 3}
	other := &Actor{ID: 4}
	staff := &Actor{ID: 5, IsStaff: true}

	t.Run("unauthenticated read denied", func(t *testing.T) {
		err := CanAccessPost(nil, ActionRead, 3)
		require.NotNil(t, err)
		assert.Equal(t, models.CodeUnauthenticated, err.Code)
	})

	t.Run("any authenticated actor may read", func(t *testing.T) {
		assert.Nil(t, CanAccessPost(other, ActionRead, 3))
		assert.Nil(t, CanAccessPost(other, ActionList, 3))
	})

	t.Run("author may update and delete", func(t *testing.T) {
		assert.Nil(t, CanAccessPost(author, ActionUpdate, 3))
		assert.Nil(t, CanAccessPost(author, ActionDelete, 3))
	})

	t.Run("non-author update forbidden", func(t *testing.T) {
		err := CanAccessPost(other, ActionUpdate, 3)
		require.NotNil(t, err)
		assert.Equal(t, models.CodeForbidden, err.Code)
	})

	t.Run("staff gets no post override", func(t *testing.T) {
		err := CanAccessPost(staff, ActionDelete, 3)
		require.NotNil(t, err)
		assert.Equal(t, models.CodeForbidden, err.Code)
	})
}

func TestCanAccessLike(t *testing.T) {
	t.Parallel()

	actor := &Actor{ID: 9}

	assert.Nil(t, CanAccessLike(actor, 9))

	err := CanAccessLike(actor, 10)
	require.NotNil(t, err)
	assert.Equal(t, models.CodeForbidden, err.Code)

	err = CanAccessLike(nil, 9)
	require.NotNil(t, err)
	assert.Equal(t, models.CodeUnauthenticated, err.Code)
}

func TestAnalyticsAndActivityPolicies(t *testing.T) {
	t.Parallel()

	staff := &Actor{ID: 1, IsStaff: true}
	regular := &Actor{ID: 2}

	assert.Nil(t, CanReadAnalytics(regular))
	err := CanReadAnalytics(nil)
	require.NotNil(t, err)
	assert.Equal(t, models.CodeUnauthenticated, err.Code)

	assert.Nil(t, CanReadActivity(staff))
	err = CanReadActivity(regular)
	require.NotNil(t, err)
	assert.Equal(t, models.CodeForbidden, err.Code)
}
