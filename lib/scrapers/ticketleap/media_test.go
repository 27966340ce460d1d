package ticketleap

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempImage(t *testing.T, name string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("fake image bytes"), 0600))
	return path
}

func TestUploadImage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/galleries/media/create", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		file, header, err := r.FormFile("image_file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "banner.jpeg", header.Filename)
		require.Equal(t, "image/jpeg", header.Header.Get("Content-Type"))
		fmt.Fprint(w, `{"medium": {"full_url": "https://cdn.example.com/small.jpeg", "hero_url": "https://cdn.example.com/hero.jpeg"}}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	client := newTestClient(t, server)

	urls, err := client.UploadImage(context.Background(), writeTempImage(t, "banner.jpeg"))
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/small.jpeg", urls.Small)
	require.Equal(t, "https://cdn.example.com/hero.jpeg", urls.Hero)
}

func TestUploadImageRejectsExtension(t *testing.T) {
	var hits int
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		hits++
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	client := newTestClient(t, server)

	for _, path := range []string{"notes.txt", "poster.pdf", "animation.webp", "noextension"} {
		_, err := client.UploadImage(context.Background(), path)
		require.ErrorIs(t, err, InvalidImageType, path)
	}
	require.Zero(t, hits, "rejected files must never leave the machine")
}

func TestUploadImageHtmlResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/galleries/media/create", func(w http.ResponseWriter, r *http.Request) {
		// the endpoint answers uploads it can't decode with an error
		// page instead of json
		fmt.Fprint(w, "<html>could not process image</html>")
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	client := newTestClient(t, server)

	_, err := client.UploadImage(context.Background(), writeTempImage(t, "corrupt.gif"))
	require.ErrorIs(t, err, BadUploadResponse)
}

func TestUploadImageMissingUrls(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/galleries/media/create", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"medium": {"full_url": "https://cdn.example.com/small.png"}}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	client := newTestClient(t, server)

	_, err := client.UploadImage(context.Background(), writeTempImage(t, "banner.png"))
	require.ErrorIs(t, err, BadUploadResponse)
}
