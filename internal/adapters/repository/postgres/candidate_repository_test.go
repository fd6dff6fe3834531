package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orgvote/orgvote/internal/core/ports"
)

func TestOrderClause(t *testing.T) {
	assert.Equal(t, " ORDER BY c.name ASC", orderClause(ports.OrderByName))
	assert.Equal(t, " ORDER BY vote_count DESC, c.name ASC", orderClause(ports.OrderByVotes))
	assert.Equal(t, " ORDER BY c.created_at DESC", orderClause(ports.OrderByCreated))
}
