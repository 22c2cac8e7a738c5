package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMongoDBWithoutTarget(t *testing.T) {
	db, err := NewMongoDB(context.Background(), "", "", "27017", "admin", "root", "secret")
	assert.Nil(t, db)
	assert.ErrorIs(t, err, ErrNoMongoTarget)
}

func TestClientOptionsFromHost(t *testing.T) {
	opts, err := ClientOptions("", "mongo.internal", "27018", "admin", "seeder", "secret")
	require.NoError(t, err)
	assert.Equal(t, []string{"mongo.internal:27018"}, opts.Hosts)
	require.NotNil(t, opts.Auth)
	assert.Equal(t, "SCRAM-SHA-256", opts.Auth.AuthMechanism)
	assert.Equal(t, "admin", opts.Auth.AuthSource)
	assert.Equal(t, "seeder", opts.Auth.Username)
	assert.Equal(t, "secret", opts.Auth.Password)
	require.NotNil(t, opts.ServerSelectionTimeout)
	assert.Equal(t, ServerSelectionTimeout, *opts.ServerSelectionTimeout)
}

func TestClientOptionsFromHostWithoutUser(t *testing.T) {
	opts, err := ClientOptions("", "localhost", "27017", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost:27017"}, opts.Hosts)
	assert.Nil(t, opts.Auth)
}

func TestClientOptionsURIWins(t *testing.T) {
	opts, err := ClientOptions("mongodb://db1:27017", "ignored", "1", "admin", "u", "p")
	require.NoError(t, err)
	assert.Equal(t, []string{"db1:27017"}, opts.Hosts)
	assert.Nil(t, opts.Auth)
}
