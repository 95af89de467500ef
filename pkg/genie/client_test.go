package genie_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/geniespaces/internal/testutil"
	"github.com/leapstack-labs/geniespaces/pkg/genie"
	"github.com/leapstack-labs/geniespaces/pkg/space"
)

const spacesPath = "/api/2.0/genie/spaces"

// newTestServer creates a test server that routes to the given handler
// map. Keys are "METHOD /path", values are handler funcs.
func newTestServer(t *testing.T, routes map[string]http.HandlerFunc) (*httptest.Server, *genie.Client) {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, handler := range routes {
		mux.HandleFunc(pattern, handler)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := genie.New(genie.WithHost(srv.URL), genie.WithToken("test-token"))
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return srv, c
}

func jsonResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&m))
	return m
}

func serializedDoc(t *testing.T, e *space.Export) string {
	t.Helper()
	data, err := e.Marshal(false)
	require.NoError(t, err)
	return string(data)
}

func TestNew(t *testing.T) {
	t.Run("missing host", func(t *testing.T) {
		t.Setenv(genie.EnvHost, "")
		t.Setenv(genie.EnvToken, "")
		_, err := genie.New()
		require.Error(t, err)
		var cfgErr *genie.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Contains(t, cfgErr.Message, genie.EnvHost)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Setenv(genie.EnvHost, "")
		t.Setenv(genie.EnvToken, "")
		_, err := genie.New(genie.WithHost("https://example.cloud.databricks.com"))
		require.Error(t, err)
		var cfgErr *genie.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Contains(t, cfgErr.Message, genie.EnvToken)
	})

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv(genie.EnvHost, "https://env.cloud.databricks.com")
		t.Setenv(genie.EnvToken, "env-token")
		c, err := genie.New()
		require.NoError(t, err)
		defer c.Close()
		assert.Equal(t, "https://env.cloud.databricks.com", c.Host())
	})

	t.Run("trailing slashes trimmed", func(t *testing.T) {
		c, err := genie.New(
			genie.WithHost("https://example.cloud.databricks.com///"),
			genie.WithToken("tok"),
		)
		require.NoError(t, err)
		defer c.Close()
		assert.Equal(t, "https://example.cloud.databricks.com", c.Host())
	})
}

func TestExportSpace(t *testing.T) {
	doc := &space.Export{Version: 1, Config: &space.Config{SampleQuestions: []space.SampleQuestion{
		space.NewSampleQuestion("What sold best?", "q1"),
	}}}

	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET " + spacesPath + "/space-123": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "true", r.URL.Query().Get("include_serialized_space"))
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			jsonResponse(w, 200, genie.SpaceResponse{
				SpaceID:         "space-123",
				Title:           "Sales Analytics",
				WarehouseID:     "wh-1",
				SerializedSpace: serializedDoc(t, doc),
			})
		},
	})

	resp, err := c.ExportSpace(context.Background(), "space-123")
	require.NoError(t, err)
	assert.Equal(t, "space-123", resp.SpaceID)
	assert.Equal(t, "Sales Analytics", resp.Title)

	exp, err := resp.Export()
	require.NoError(t, err)
	require.NotNil(t, exp)
	assert.Equal(t, "q1", exp.Config.SampleQuestions[0].ID)

	// The decode is pure: a second call yields the same document.
	again, err := resp.Export()
	require.NoError(t, err)
	assert.Equal(t, exp, again)
}

func TestExportSpaceWithoutSerializedConfig(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET " + spacesPath + "/space-123": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, genie.SpaceResponse{SpaceID: "space-123", Title: "Bare"})
		},
	})

	resp, err := c.ExportSpace(context.Background(), "space-123")
	require.NoError(t, err)

	exp, err := resp.Export()
	require.NoError(t, err)
	assert.Nil(t, exp)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		check       func(t *testing.T, err error)
		msgContains string
	}{
		{
			name:   "401 authentication",
			status: 401,
			body:   `{"message": "Invalid token"}`,
			check: func(t *testing.T, err error) {
				assert.True(t, genie.IsAuthentication(err))
				assert.False(t, genie.IsNotFound(err))
			},
			msgContains: "authentication failed",
		},
		{
			name:   "404 not found",
			status: 404,
			body:   `{"message": "Space not found"}`,
			check: func(t *testing.T, err error) {
				assert.True(t, genie.IsNotFound(err))
				assert.False(t, genie.IsAuthentication(err))
			},
			msgContains: "Space not found",
		},
		{
			name:   "400 validation with body attached",
			status: 400,
			body:   `{"message": "Bad serialized_space", "details": {"field": "config"}}`,
			check: func(t *testing.T, err error) {
				assert.True(t, genie.IsValidation(err))
				apiErr, ok := genie.AsAPIError(err)
				require.True(t, ok)
				assert.Equal(t, "Bad serialized_space", apiErr.Body["message"])
				assert.Contains(t, apiErr.Body, "details")
			},
			msgContains: "validation error",
		},
		{
			name:   "500 generic",
			status: 500,
			body:   `{"message": "boom"}`,
			check: func(t *testing.T, err error) {
				assert.False(t, genie.IsAuthentication(err))
				assert.False(t, genie.IsNotFound(err))
				assert.False(t, genie.IsValidation(err))
				apiErr, ok := genie.AsAPIError(err)
				require.True(t, ok)
				assert.Equal(t, 500, apiErr.StatusCode)
			},
			msgContains: "boom",
		},
		{
			name:   "non-JSON body kept raw",
			status: 503,
			body:   `upstream down`,
			check: func(t *testing.T, err error) {
				apiErr, ok := genie.AsAPIError(err)
				require.True(t, ok)
				assert.Equal(t, "upstream down", apiErr.Body["raw"])
			},
			msgContains: "unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c := newTestServer(t, map[string]http.HandlerFunc{
				"GET " + spacesPath + "/space-err": func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(tt.status)
					w.Write([]byte(tt.body)) //nolint:errcheck
				},
			})

			_, err := c.ExportSpace(context.Background(), "space-err")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msgContains)
			tt.check(t, err)
		})
	}
}

func TestImportSpace(t *testing.T) {
	doc := buildImportDoc()

	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"POST " + spacesPath: func(w http.ResponseWriter, r *http.Request) {
			body := decodeBody(t, r)
			assert.Equal(t, "wh-1", body["warehouse_id"])
			assert.Equal(t, "/Workspace/Genie", body["parent_path"])
			assert.Equal(t, "Quarterly Sales", body["title"])
			_, hasDescription := body["description"]
			assert.False(t, hasDescription)

			serialized, ok := body["serialized_space"].(string)
			require.True(t, ok)
			parsed, err := space.Parse([]byte(serialized))
			require.NoError(t, err)
			assert.Len(t, parsed.DataSources.Tables, 1)

			jsonResponse(w, 200, genie.SpaceResponse{SpaceID: "new-1", Title: "Quarterly Sales"})
		},
	})

	resp, err := c.ImportSpace(context.Background(), genie.ImportRequest{
		WarehouseID: "wh-1",
		ParentPath:  "/Workspace/Genie",
		Space:       doc,
		Title:       "Quarterly Sales",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-1", resp.SpaceID)
}

func TestImportSpaceRequiresDocument(t *testing.T) {
	c, err := genie.New(genie.WithHost("https://example.cloud.databricks.com"), genie.WithToken("tok"))
	require.NoError(t, err)
	defer c.Close()

	_, err = c.ImportSpace(context.Background(), genie.ImportRequest{WarehouseID: "wh-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no space document")
}

func TestUpdateSpaceSparse(t *testing.T) {
	var got map[string]any
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"PATCH " + spacesPath + "/space-123": func(w http.ResponseWriter, r *http.Request) {
			got = decodeBody(t, r)
			jsonResponse(w, 200, genie.SpaceResponse{SpaceID: "space-123", Title: "Renamed"})
		},
	})

	resp, err := c.UpdateSpace(context.Background(), "space-123", genie.UpdateRequest{Title: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", resp.Title)

	// Only the supplied field goes over the wire.
	require.Len(t, got, 1)
	assert.Equal(t, "Renamed", got["title"])
}

func TestUpdateSpaceWithDocument(t *testing.T) {
	var got map[string]any
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"PATCH " + spacesPath + "/space-123": func(w http.ResponseWriter, r *http.Request) {
			got = decodeBody(t, r)
			jsonResponse(w, 200, genie.SpaceResponse{SpaceID: "space-123"})
		},
	})

	_, err := c.UpdateSpace(context.Background(), "space-123", genie.UpdateRequest{
		Space:       &space.Export{Version: 1},
		WarehouseID: "wh-2",
	})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "wh-2", got["warehouse_id"])
	assert.Contains(t, got["serialized_space"], `"version": 1`)
}

func TestCloneSpace(t *testing.T) {
	doc := buildImportDoc()

	newServer := func(t *testing.T, captured *map[string]any) *genie.Client {
		_, c := newTestServer(t, map[string]http.HandlerFunc{
			"GET " + spacesPath + "/src-1": func(w http.ResponseWriter, _ *http.Request) {
				jsonResponse(w, 200, genie.SpaceResponse{
					SpaceID:         "src-1",
					Title:           "Sales Analytics",
					Description:     "All sales data",
					SerializedSpace: serializedDoc(t, doc),
				})
			},
			"POST " + spacesPath: func(w http.ResponseWriter, r *http.Request) {
				*captured = decodeBody(t, r)
				jsonResponse(w, 200, genie.SpaceResponse{SpaceID: "copy-1"})
			},
		})
		return c
	}

	t.Run("defaults title and description from source", func(t *testing.T) {
		var captured map[string]any
		c := newServer(t, &captured)

		resp, err := c.CloneSpace(context.Background(), genie.CloneRequest{
			SourceID:    "src-1",
			WarehouseID: "wh-1",
			ParentPath:  "/Workspace/Genie",
		})
		require.NoError(t, err)
		assert.Equal(t, "copy-1", resp.SpaceID)
		assert.Equal(t, "Sales Analytics (Copy)", captured["title"])
		assert.Equal(t, "All sales data", captured["description"])
		assert.Equal(t, "wh-1", captured["warehouse_id"])
	})

	t.Run("explicit title wins", func(t *testing.T) {
		var captured map[string]any
		c := newServer(t, &captured)

		_, err := c.CloneSpace(context.Background(), genie.CloneRequest{
			SourceID:    "src-1",
			WarehouseID: "wh-1",
			ParentPath:  "/Workspace/Genie",
			Title:       "Staging Copy",
		})
		require.NoError(t, err)
		assert.Equal(t, "Staging Copy", captured["title"])
		assert.Equal(t, "All sales data", captured["description"])
	})
}

func TestCloneSpaceEmptySource(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET " + spacesPath + "/src-1": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, genie.SpaceResponse{SpaceID: "src-1", Title: "Empty"})
		},
	})

	_, err := c.CloneSpace(context.Background(), genie.CloneRequest{
		SourceID:    "src-1",
		WarehouseID: "wh-1",
		ParentPath:  "/Workspace/Genie",
	})
	require.ErrorIs(t, err, genie.ErrEmptySpace)
}

func TestExportSpaceToFile(t *testing.T) {
	doc := buildImportDoc()

	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET " + spacesPath + "/space-123": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, genie.SpaceResponse{
				SpaceID:         "space-123",
				SerializedSpace: serializedDoc(t, doc),
			})
		},
	})

	path := filepath.Join(t.TempDir(), "nested", "out", "space.json")
	exp, err := c.ExportSpaceToFile(context.Background(), "space-123", path)
	require.NoError(t, err)
	require.NotNil(t, exp)

	loaded, err := space.Load(path)
	require.NoError(t, err)
	assert.Equal(t, exp, loaded)
}

func TestExportSpaceToFileEmpty(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET " + spacesPath + "/space-123": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, genie.SpaceResponse{SpaceID: "space-123"})
		},
	})

	_, err := c.ExportSpaceToFile(context.Background(), "space-123", filepath.Join(t.TempDir(), "space.json"))
	require.ErrorIs(t, err, genie.ErrEmptySpace)
}

func TestImportSpaceFromFile(t *testing.T) {
	doc := buildImportDoc()
	path := filepath.Join(t.TempDir(), "space.json")
	require.NoError(t, doc.Save(path, true))

	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"POST " + spacesPath: func(w http.ResponseWriter, r *http.Request) {
			body := decodeBody(t, r)
			assert.Equal(t, "wh-1", body["warehouse_id"])
			serialized, ok := body["serialized_space"].(string)
			require.True(t, ok)
			_, err := space.Parse([]byte(serialized))
			require.NoError(t, err)
			jsonResponse(w, 200, genie.SpaceResponse{SpaceID: "new-1"})
		},
	})

	resp, err := c.ImportSpaceFromFile(context.Background(), path, genie.ImportRequest{
		WarehouseID: "wh-1",
		ParentPath:  "/Workspace/Genie",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-1", resp.SpaceID)
}

func TestImportSpaceFromMissingFile(t *testing.T) {
	c, err := genie.New(genie.WithHost("https://example.cloud.databricks.com"), genie.WithToken("tok"))
	require.NoError(t, err)
	defer c.Close()

	_, err = c.ImportSpaceFromFile(context.Background(), filepath.Join(t.TempDir(), "nope.json"), genie.ImportRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestUpdateSpaceFromFile(t *testing.T) {
	doc := buildImportDoc()
	path := filepath.Join(t.TempDir(), "space.json")
	require.NoError(t, doc.Save(path, true))

	var got map[string]any
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"PATCH " + spacesPath + "/space-123": func(w http.ResponseWriter, r *http.Request) {
			got = decodeBody(t, r)
			jsonResponse(w, 200, genie.SpaceResponse{SpaceID: "space-123"})
		},
	})

	_, err := c.UpdateSpaceFromFile(context.Background(), "space-123", path, genie.UpdateRequest{Title: "From file"})
	require.NoError(t, err)
	assert.Equal(t, "From file", got["title"])
	assert.Contains(t, got, "serialized_space")
}

func TestDiffSpaces(t *testing.T) {
	docA := &space.Export{Version: 1}
	docB := buildImportDoc()

	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET " + spacesPath + "/a": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, genie.SpaceResponse{SpaceID: "a", SerializedSpace: serializedDoc(t, docA)})
		},
		"GET " + spacesPath + "/b": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, genie.SpaceResponse{SpaceID: "b", SerializedSpace: serializedDoc(t, docB)})
		},
	})

	diff, err := c.DiffSpaces(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "a", diff.SpaceID1)
	assert.Equal(t, "b", diff.SpaceID2)
	assert.Nil(t, diff.Export1.DataSources)
	require.NotNil(t, diff.Export2.DataSources)
	assert.Len(t, diff.Export2.DataSources.Tables, 1)
}

func TestDiffSpacesEmptySide(t *testing.T) {
	docA := &space.Export{Version: 1}

	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET " + spacesPath + "/a": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, genie.SpaceResponse{SpaceID: "a", SerializedSpace: serializedDoc(t, docA)})
		},
		"GET " + spacesPath + "/b": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, genie.SpaceResponse{SpaceID: "b"})
		},
	})

	_, err := c.DiffSpaces(context.Background(), "a", "b")
	require.ErrorIs(t, err, genie.ErrEmptySpace)
}

func TestRequestLogging(t *testing.T) {
	logger, buf := testutil.NewCaptureLogger()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, 200, genie.SpaceResponse{SpaceID: "space-123"})
	}))
	t.Cleanup(srv.Close)

	c, err := genie.New(
		genie.WithHost(srv.URL),
		genie.WithToken("tok"),
		genie.WithLogger(logger),
	)
	require.NoError(t, err)
	defer c.Close()

	_, err = c.ExportSpace(context.Background(), "space-123")
	require.NoError(t, err)

	assert.True(t, buf.Contains("genie api request"))
	assert.True(t, buf.Contains("status=200"))
}

func buildImportDoc() *space.Export {
	return &space.Export{
		Version: 1,
		DataSources: &space.DataSources{
			Tables: []space.Table{
				space.NewTable("main.sales.orders", "Order facts", nil),
			},
		},
	}
}
