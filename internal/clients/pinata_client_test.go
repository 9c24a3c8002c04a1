package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPinFile(t *testing.T) {
	var gotAuth string
	var gotName string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/pinning/pinFileToIPFS", r.URL.Path)
		require.Equal(t, "POST", r.Method)
		gotAuth = r.Header.Get("Authorization")

		require.NoError(t, r.ParseMultipartForm(4<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotName = header.Filename

		var metadata map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("pinataMetadata")), &metadata))
		assert.Equal(t, "logo.png", metadata["name"])

		var options map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("pinataOptions")), &options))
		assert.EqualValues(t, 1, options["cidVersion"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"IpfsHash":  "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi",
			"PinSize":   1234,
			"Timestamp": "2025-01-01T00:00:00Z",
		})
	}))
	defer server.Close()

	client := NewPinataClient(server.URL, "test-jwt", 5*time.Second)
	cid, err := client.PinFile(context.Background(), []byte("fake-png-bytes"), "logo.png")
	require.NoError(t, err)

	assert.Equal(t, "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi", cid)
	assert.Equal(t, "Bearer test-jwt", gotAuth)
	assert.Equal(t, "logo.png", gotName)
}

func TestPinFileServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{
				"reason":  "INVALID_CREDENTIALS",
				"details": "Invalid/expired credentials",
			},
		})
	}))
	defer server.Close()

	client := NewPinataClient(server.URL, "bad-jwt", 5*time.Second)
	_, err := client.PinFile(context.Background(), []byte("data"), "logo.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_CREDENTIALS")
}

func TestPinFileMissingHash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"PinSize": 10})
	}))
	defer server.Close()

	client := NewPinataClient(server.URL, "jwt", 5*time.Second)
	_, err := client.PinFile(context.Background(), []byte("data"), "logo.png")
	require.ErrorIs(t, err, ErrPinataMalformedResponse)
}

func TestPinFileUnreachable(t *testing.T) {
	client := NewPinataClient("http://127.0.0.1:1", "jwt", 500*time.Millisecond)
	_, err := client.PinFile(context.Background(), []byte("data"), "logo.png")
	require.Error(t, err)
}
