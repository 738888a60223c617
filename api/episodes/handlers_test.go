package episodes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/subcast/subcast/api/types"
	"github.com/subcast/subcast/internal/models"
	episodesvc "github.com/subcast/subcast/internal/services/episodes"
	"github.com/subcast/subcast/internal/services/podcastindex"
	podcastsvc "github.com/subcast/subcast/internal/services/podcasts"
	"github.com/subcast/subcast/internal/services/subscriptions"
)

type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) GetPodcastByFeedURL(ctx context.Context, feedURL string) (*podcastindex.Podcast, error) {
	args := m.Called(ctx, feedURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*podcastindex.Podcast), args.Error(1)
}

func (m *mockDirectory) GetEpisodesByFeedURL(ctx context.Context, feedURL string, limit int) ([]podcastindex.Episode, error) {
	args := m.Called(ctx, feedURL, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]podcastindex.Episode), args.Error(1)
}

func setupRouter(t *testing.T) (*gin.Engine, *subscriptions.Service, *mockDirectory) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Podcast{}, &models.PodcastAltURL{}, &models.Episode{}))

	directory := new(mockDirectory)
	service := subscriptions.NewService(podcastsvc.NewRepository(db), episodesvc.NewRepository(db), directory)
	deps := &types.Dependencies{Subscriptions: service}

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1/episodes"), deps)
	return router, service, directory
}

func subscribe(t *testing.T, service *subscriptions.Service, directory *mockDirectory, feedURL string, episodeCount int) []models.Episode {
	directory.On("GetPodcastByFeedURL", mock.Anything, feedURL).Return(&podcastindex.Podcast{
		ID:    42,
		Title: "The Example Show",
		URL:   feedURL,
	}, nil)

	items := make([]podcastindex.Episode, 0, episodeCount)
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < episodeCount; i++ {
		items = append(items, podcastindex.Episode{
			ID:            int64(i + 1),
			Title:         fmt.Sprintf("Episode %d", i+1),
			GUID:          fmt.Sprintf("guid-%d", i+1),
			DatePublished: base.AddDate(0, 0, i).Unix(),
			EnclosureURL:  "https://example.com/audio.mp3",
		})
	}
	directory.On("GetEpisodesByFeedURL", mock.Anything, feedURL, mock.Anything).Return(items, nil)

	_, err := service.AddPodcast(context.Background(), subscriptions.NewSubscription{FeedURL: feedURL})
	require.NoError(t, err)

	eps, err := service.GetEpisodes(context.Background(), feedURL)
	require.NoError(t, err)
	require.Len(t, eps, episodeCount)
	return eps
}

func TestGetByFeedURL(t *testing.T) {
	router, service, directory := setupRouter(t)
	feedURL := "https://example.com/feed.xml"
	subscribe(t, service, directory, feedURL, 3)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/episodes?feed_url="+feedURL, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count    int              `json:"count"`
		Episodes []models.Episode `json:"episodes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Count)
}

func TestGetByFeedURL_Unknown(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/episodes?feed_url=https://unknown.example.com/feed", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.Count)
}

func TestGetByFeedURL_MissingParam(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/episodes", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRecent(t *testing.T) {
	router, service, directory := setupRouter(t)
	subscribe(t, service, directory, "https://example.com/feed.xml", 5)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/episodes/recent?limit=2", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
}

func TestGetRecent_InvalidBefore(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/episodes/recent?before=notatime", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPutPlayback(t *testing.T) {
	router, service, directory := setupRouter(t)
	eps := subscribe(t, service, directory, "https://example.com/feed.xml", 1)

	body, _ := json.Marshal(gin.H{"position": 120})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/v1/episodes/%d/playback", eps[0].ID), bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/episodes/in-progress", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count    int                               `json:"count"`
		Episodes []subscriptions.EpisodeWithPodcast `json:"episodes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	require.NotNil(t, resp.Episodes[0].Episode.Position)
	assert.Equal(t, 120, *resp.Episodes[0].Episode.Position)
	require.NotNil(t, resp.Episodes[0].Podcast)
	assert.Equal(t, "The Example Show", resp.Episodes[0].Podcast.Title)
}

func TestPutPlayback_NotFound(t *testing.T) {
	router, _, _ := setupRouter(t)

	body, _ := json.Marshal(gin.H{"position": 10})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/v1/episodes/999/playback", bytes.NewReader(body)))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPutPlayback_NegativePosition(t *testing.T) {
	router, _, _ := setupRouter(t)

	body, _ := json.Marshal(gin.H{"position": -1})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/v1/episodes/1/playback", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
