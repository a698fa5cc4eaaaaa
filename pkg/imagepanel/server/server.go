// Package server serves the image panel and its options editor over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/ukaji3/imagepanel-go/pkg/imagepanel"
	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/imageinfo"
	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/models"
	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/output"
	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/render"
	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/resolve"
)

// Loader fetches the current result table. It is called on every render.
type Loader func(ctx context.Context) (models.PanelData, error)

// Server holds the panel options and renders the table produced by its loader.
type Server struct {
	mu     sync.RWMutex
	opts   models.Options
	load   Loader
	dims   models.Dimensions
	title  string
	logger *slog.Logger
}

// New creates a server. A nil logger discards log output.
func New(opts models.Options, load Loader, dims models.Dimensions, title string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		opts:   opts,
		load:   load,
		dims:   dims,
		title:  title,
		logger: logger,
	}
}

// Options returns the current options.
func (s *Server) Options() models.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts
}

// ReplaceOptions swaps in a complete new options value after validating it.
func (s *Server) ReplaceOptions(o models.Options) error {
	if err := imagepanel.Validate(o); err != nil {
		return err
	}
	s.mu.Lock()
	s.opts = o
	s.mu.Unlock()
	s.logger.Info("options replaced", "variant", o.Variant, "imageSize", o.ImageSize)
	return nil
}

// Router builds the gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", s.getPanel)
	r.GET("/editor", s.getEditor)
	r.POST("/editor", s.postEditor)

	api := r.Group("/api")
	{
		api.GET("/options", s.getOptions)
		api.PUT("/options", s.putOptions)
		api.GET("/options/defaults", func(c *gin.Context) {
			success(c, imagepanel.DefaultOptions())
		})
		api.GET("/rows", s.getRows)
		api.GET("/rows/:row/image", s.getRowImage)
		api.GET("/images", s.getImages)
	}

	return r
}

var navLinks = []output.Link{
	{Href: "/", Text: "Panel"},
	{Href: "/editor", Text: "Edit options"},
}

func (s *Server) getPanel(c *gin.Context) {
	dims := s.dims
	if w, err := strconv.Atoi(c.Query("width")); err == nil && w > 0 {
		dims.Width = w
	}
	if h, err := strconv.Atoi(c.Query("height")); err == nil && h > 0 {
		dims.Height = h
	}

	data, err := s.load(c.Request.Context())
	if err != nil {
		s.logger.Error("load table", "error", err)
		c.Error(err)
		data = models.PanelData{State: models.LoadingStateError}
	}

	node, err := imagepanel.Render(data, s.Options(), dims)
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "render panel: %v", err)
		return
	}
	s.writePage(c, http.StatusOK, node)
}

func (s *Server) getEditor(c *gin.Context) {
	s.writePage(c, http.StatusOK, imagepanel.NewEditor(s.Options(), nil).Node())
}

// postEditor applies every visible control from the submitted form. The
// options are replaced only when every control parses.
func (s *Server) postEditor(c *gin.Context) {
	var latest *models.Options
	editor := imagepanel.NewEditor(s.Options(), func(o models.Options) { latest = &o })

	for _, ctl := range editor.Controls() {
		value, ok := c.GetPostForm(ctl.Name)
		if !ok {
			if ctl.Kind != render.ControlSwitch {
				continue
			}
			value = "false"
		}
		if err := editor.Set(ctl.Name, value); err != nil {
			c.Error(err)
			node := render.El("div", nil,
				render.El("p", render.Style{"color": "#e02f44", "margin": "1rem"}, render.Text(err.Error())),
				imagepanel.NewEditor(s.Options(), nil).Node(),
			)
			s.writePage(c, http.StatusBadRequest, node)
			return
		}
	}

	if latest != nil {
		if err := s.ReplaceOptions(*latest); err != nil {
			c.Error(err)
			c.String(http.StatusBadRequest, "%v", err)
			return
		}
	}
	c.Redirect(http.StatusSeeOther, "/editor")
}

func (s *Server) getOptions(c *gin.Context) {
	success(c, s.Options())
}

// putOptions replaces the options wholesale. Keys missing from the body take
// their default values, not the current ones.
func (s *Server) putOptions(c *gin.Context) {
	opts := imagepanel.DefaultOptions()
	if err := c.ShouldBindJSON(&opts); err != nil {
		failure(c, http.StatusBadRequest, "Invalid options", err)
		return
	}
	if err := s.ReplaceOptions(opts); err != nil {
		failure(c, http.StatusBadRequest, "Invalid options", err)
		return
	}
	success(c, opts)
}

func (s *Server) getRows(c *gin.Context) {
	rows, ok := s.project(c)
	if !ok {
		return
	}
	success(c, gin.H{
		"rows":  rows,
		"count": len(rows),
	})
}

func (s *Server) getImages(c *gin.Context) {
	rows, ok := s.project(c)
	if !ok {
		return
	}
	success(c, imageinfo.Inspect(rows))
}

func (s *Server) getRowImage(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("row"))
	if err != nil || idx < 0 {
		failure(c, http.StatusBadRequest, "Invalid row parameter", err)
		return
	}

	rows, ok := s.project(c)
	if !ok {
		return
	}
	if idx >= len(rows) {
		failure(c, http.StatusNotFound, "Row not found", nil)
		return
	}

	raw, err := base64.StdEncoding.DecodeString(rows[idx].Image)
	if err != nil || len(raw) == 0 {
		failure(c, http.StatusUnprocessableEntity, "Row has no decodable image", err)
		return
	}

	format := imageinfo.Sniff(raw)
	if format == "" {
		format = imageinfo.Normalize(rows[idx].ImageType)
	}
	c.Data(http.StatusOK, "image/"+format, raw)
}

func (s *Server) project(c *gin.Context) ([]models.RowRecord, bool) {
	data, err := s.load(c.Request.Context())
	if err != nil {
		s.logger.Error("load table", "error", err)
		failure(c, http.StatusBadGateway, "Failed to load table", err)
		return nil, false
	}

	rows, err := imagepanel.Project(data, s.Options())
	if err != nil {
		var rowErr *resolve.RowError
		if errors.As(err, &rowErr) {
			failure(c, http.StatusUnprocessableEntity, "Failed to project rows", err)
			return nil, false
		}
		failure(c, http.StatusInternalServerError, "Failed to project rows", err)
		return nil, false
	}
	if rows == nil {
		rows = []models.RowRecord{}
	}
	return rows, true
}

func (s *Server) writePage(c *gin.Context, status int, node *render.Node) {
	var buf bytes.Buffer
	if err := output.WritePage(&buf, s.title, node, navLinks...); err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "write page: %v", err)
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
