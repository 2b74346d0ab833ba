package reeve

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaceList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Person/face/list/5", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"result": []any{
				map[string]any{"id": 1, "personId": 5},
				map[string]any{"id": 2, "personId": 5},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	resp, err := client.Face.List(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, resp.ResultList(), 2)
}

func TestFaceAdd(t *testing.T) {
	imageData := []byte("fake jpeg bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Person/face/add", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "5", r.FormValue("personId"))

		files := r.MultipartForm.File["face"]
		require.Len(t, files, 1)
		assert.Equal(t, "face.jpg", files[0].Filename)
		assert.Equal(t, "image/jpeg", files[0].Header.Get("Content-Type"))

		f, err := files[0].Open()
		require.NoError(t, err)
		defer f.Close()
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, imageData, data)

		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "result": map[string]any{"id": 1}})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Face.Add(context.Background(), 5, imageData)
	require.NoError(t, err)
}

func TestFaceDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Person/face/delete/9", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "result": "deleted"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Face.Delete(context.Background(), 9)
	require.NoError(t, err)
}

func TestFaceRecognizeReshape(t *testing.T) {
	tests := []struct {
		name     string
		result   any
		expected any
	}{
		{
			name: "multiple candidates keep the first",
			result: []any{
				map[string]any{"id": float64(1)},
				map[string]any{"id": float64(2)},
			},
			expected: map[string]any{"id": float64(1)},
		},
		{
			name:     "empty list becomes nil",
			result:   []any{},
			expected: nil,
		},
		{
			name:     "null result stays nil",
			result:   nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/Person/face/recognize", r.URL.Path)
				require.NoError(t, r.ParseMultipartForm(1<<20))
				require.Len(t, r.MultipartForm.File["face"], 1)

				_ = json.NewEncoder(w).Encode(map[string]any{
					"success": true,
					"result":  tt.result,
					"error":   nil,
				})
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)
			resp, err := client.Face.Recognize(context.Background(), []byte("img"))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, resp.Result)
			assert.Equal(t, tt.expected, resp.Raw["result"])
		})
	}
}

func TestFaceRecognizeDecodesBestMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"result": []any{
				map[string]any{
					"name":         "John Doe",
					"thresold":     48,
					"personId":     1639555908,
					"score":        130,
					"isMatchFound": true,
					"attributes": map[string]any{
						"age":    "33",
						"gender": "Male",
					},
				},
			},
			"statusCode": 200,
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	resp, err := client.Face.Recognize(context.Background(), []byte("img"))
	require.NoError(t, err)

	match := IdentifyResultFromMap(resp.ResultMap())
	assert.Equal(t, "John Doe", match.Name)
	assert.Equal(t, 48, match.Threshold)
	assert.Equal(t, 130, match.Score)
	assert.True(t, match.IsMatchFound)
	require.NotNil(t, match.Attributes)
	assert.Equal(t, "33", match.Attributes.Age)
}

func TestFaceVerifyReturnsEnvelopeUnmodified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Person/face/verification", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "3", r.FormValue("personId"))
		require.Len(t, r.MultipartForm.File["face"], 1)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"result": map[string]any{
				"verificationSucceeded": true,
				"score":                 112,
			},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	resp, err := client.Face.Verify(context.Background(), []byte("img"), 3)
	require.NoError(t, err)

	result := VerificationResultFromMap(resp.ResultMap())
	assert.True(t, result.VerificationSucceeded)
	assert.Equal(t, 112, result.Score)
}
