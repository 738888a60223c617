package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subcast/subcast/internal/models"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name    string
		dbPath  string
		wantErr bool
	}{
		{
			name:   "in-memory database",
			dbPath: ":memory:",
		},
		{
			name:   "file database",
			dbPath: filepath.Join(t.TempDir(), "test.db"),
		},
		{
			name:   "file database in missing directory",
			dbPath: filepath.Join(t.TempDir(), "nested", "dir", "test.db"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := Initialize(tt.dbPath, false)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.NotNil(t, conn)
			assert.NotNil(t, conn.DB)
			assert.NoError(t, conn.HealthCheck())

			conn.Close()
		})
	}
}

func TestDB_Close(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)

	require.NoError(t, conn.Close())

	assert.Error(t, conn.HealthCheck(), "HealthCheck should fail after database is closed")
}

func TestDB_Migrate(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.Migrate())

	assert.True(t, conn.DB.Migrator().HasTable(&models.Podcast{}))
	assert.True(t, conn.DB.Migrator().HasTable(&models.Episode{}))
}

func TestDB_Reset(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.Migrate())

	podcast := models.Podcast{
		Status:  models.StatusProcessed,
		Title:   "Doomed Show",
		FeedURL: "https://example.com/feed.xml",
	}
	require.NoError(t, conn.DB.Create(&podcast).Error)
	require.NoError(t, conn.DB.Create(&models.Episode{
		PodcastID: podcast.ID,
		Title:     "Doomed Episode",
		GUID:      "guid-1",
	}).Error)

	require.NoError(t, conn.Reset())

	// Schema survives, data does not
	assert.True(t, conn.DB.Migrator().HasTable(&models.Podcast{}))

	var podcastCount, episodeCount int64
	require.NoError(t, conn.DB.Model(&models.Podcast{}).Count(&podcastCount).Error)
	require.NoError(t, conn.DB.Model(&models.Episode{}).Count(&episodeCount).Error)
	assert.Zero(t, podcastCount)
	assert.Zero(t, episodeCount)
}
