package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEntity implements both hook interfaces.
type fakeEntity struct {
	authorID  string
	published *time.Time
}

func (f *fakeEntity) SetAuthorID(id string)      { f.authorID = id }
func (f *fakeEntity) PublishedAt() *time.Time    { return f.published }
func (f *fakeEntity) SetPublishedAt(t time.Time) { f.published = &t }

func TestStampAuthor_OverridesClientValue(t *testing.T) {
	t.Parallel()

	// Whatever author the payload carried, the requester wins.
	e := &fakeEntity{authorID: "attacker-supplied"}
	StampAuthor(e, "requester-id")
	assert.Equal(t, "requester-id", e.authorID)
}

func TestStampPublished_SetsWhenUnset(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := &fakeEntity{}
	StampPublished(e, now)
	require.NotNil(t, e.published)
	assert.True(t, e.published.Equal(now))
}

func TestStampPublished_KeepsExplicitValue(t *testing.T) {
	t.Parallel()

	explicit := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	e := &fakeEntity{}
	e.SetPublishedAt(explicit)
	StampPublished(e, time.Now())
	require.NotNil(t, e.published)
	assert.True(t, e.published.Equal(explicit), "an already-set published date must not be overwritten")
}

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hashed, err := HashPassword("Secret_1")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret_1", hashed, "hash must not be the plaintext")
	assert.True(t, VerifyPassword(hashed, "Secret_1"))
	assert.False(t, VerifyPassword(hashed, "Secret_2"))
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "Secret_1"))
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("Secret_1")
	require.NoError(t, err)
	b, err := HashPassword("Secret_1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
