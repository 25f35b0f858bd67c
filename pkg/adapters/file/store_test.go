package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/brush/pkg/adapters/file"
	"github.com/aretw0/brush/pkg/domain"
	"github.com/aretw0/brush/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileIdentityStore_Contract(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "botConfig.cfg"))
	ports.RunIdentityStoreContract(t, store)
}

func TestFileIdentityStore_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bot.cfg")
	store := file.New(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Identity{Name: "Bob", ID: "1234"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Bob:1234", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileIdentityStore_OneBotPerFile(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "bot.cfg"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Identity{Name: "Bob", ID: "1"}))
	require.NoError(t, store.Save(ctx, domain.Identity{Name: "Alice", ID: "2"}))

	_, err := store.Load(ctx, "Bob")
	assert.ErrorIs(t, err, domain.ErrIdentityNotFound)

	require.NoError(t, store.Delete(ctx, "Bob"), "deleting another bot leaves the file alone")
	alice, err := store.Load(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, "2", alice.ID)
}

func TestFileIdentityStore_ReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "botConfig.cfg")
	require.NoError(t, os.WriteFile(path, []byte("Bob:abc-def\n"), 0644))

	identity, err := file.New(path).Load(context.Background(), "Bob")
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{Name: "Bob", ID: "abc-def"}, identity)
}

func TestFileIdentityStore_InvalidName(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "bot.cfg"))

	err := store.Save(context.Background(), domain.Identity{Name: "a:b", ID: "1"})
	assert.ErrorIs(t, err, domain.ErrParameter)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    domain.Identity
		wantErr bool
	}{
		{name: "plain", content: "Bob:1", want: domain.Identity{Name: "Bob", ID: "1"}},
		{name: "trailing newline", content: "Bob:1\n", want: domain.Identity{Name: "Bob", ID: "1"}},
		{name: "id with colon", content: "Bob:a:b", want: domain.Identity{Name: "Bob", ID: "a:b"}},
		{name: "no separator", content: "Bob", wantErr: true},
		{name: "empty id", content: "Bob:", wantErr: true},
		{name: "empty", content: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := file.Parse(tt.content)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_DefaultPath(t *testing.T) {
	assert.Equal(t, file.DefaultPath, file.New("").Path)
}
