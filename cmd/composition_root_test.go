package cmd_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"orders/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() cmd.Config {
	return cmd.Config{
		HTTPPort:            8080,
		Storage:             cmd.StorageMemory,
		CompletionDelay:     time.Second,
		CompletionSchedule:  "* * * * * *",
		CompletionBatchSize: 10,
	}
}

func TestCompositionRoot(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("should serve the api from memory storage", func(t *testing.T) {
		root, err := cmd.NewCompositionRoot(t.Context(), memoryConfig(), logger)
		require.NoError(t, err)
		defer func() { require.NoError(t, root.Close()) }()

		e, err := root.CreateRouter()
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/orders",
			strings.NewReader(`{"productName":"Espresso beans","productPrice":14.5,"productQuantity":3}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		list := httptest.NewRecorder()
		e.ServeHTTP(list, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
		assert.Equal(t, http.StatusOK, list.Code)
		assert.Contains(t, list.Body.String(), "Espresso beans")
	})

	t.Run("should build the job manager", func(t *testing.T) {
		root, err := cmd.NewCompositionRoot(t.Context(), memoryConfig(), logger)
		require.NoError(t, err)

		manager, err := root.CreateJobManager()
		require.NoError(t, err)
		require.NoError(t, manager.StartAll())
		manager.StopAll()
	})

	t.Run("should reject unknown storage", func(t *testing.T) {
		cfg := memoryConfig()
		cfg.Storage = "redis"

		_, err := cmd.NewCompositionRoot(t.Context(), cfg, logger)

		require.Error(t, err)
	})
}
