package home

import (
	"bytes"
	"net/http"

	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/dalemusser/chapterhub/internal/app/system/pagecache"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds dependencies needed to serve the home page.
type Handler struct {
	DB    *mongo.Database
	Cache *pagecache.Cache
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, cache *pagecache.Cache, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Cache: cache,
		Log:   logger,
	}
}

// ServeRoot handles GET /.
//
// The landing page is identical for every anonymous visitor, so those
// renders go through the page cache. Signed-in users see their own name
// and navigation and always render fresh.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	_, signedIn := auth.CurrentUser(r)

	if !signedIn && h.Cache != nil {
		if entry, ok := h.Cache.Get(r.URL.Path); ok {
			w.Header().Set("Content-Type", entry.ContentType)
			_, _ = w.Write(entry.Body)
			return
		}
	}

	data := struct {
		viewdata.BaseVM
	}{
		BaseVM: viewdata.NewBaseVM(r, "Welcome", "/"),
	}

	if !signedIn && h.Cache != nil {
		var buf bytes.Buffer
		rec := &captureWriter{ResponseWriter: w, tee: &buf}
		templates.Render(rec, r, "home", data)
		if rec.status == 0 || rec.status == http.StatusOK {
			h.Cache.Set(r.URL.Path, rec.Header().Get("Content-Type"), buf.Bytes())
		}
		return
	}

	templates.Render(w, r, "home", data)
}

// captureWriter tees the response body so a successful render can be
// cached after it is sent.
type captureWriter struct {
	http.ResponseWriter
	tee    *bytes.Buffer
	status int
}

func (c *captureWriter) WriteHeader(status int) {
	c.status = status
	c.ResponseWriter.WriteHeader(status)
}

func (c *captureWriter) Write(p []byte) (int, error) {
	c.tee.Write(p)
	return c.ResponseWriter.Write(p)
}
