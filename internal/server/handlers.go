package server

import (
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/netweave/pkg/buildinfo"
	"github.com/matzehuels/netweave/pkg/cache"
	"github.com/matzehuels/netweave/pkg/errors"
	"github.com/matzehuels/netweave/pkg/netlist"
	"github.com/matzehuels/netweave/pkg/reader"
	"github.com/matzehuels/netweave/pkg/render/nodelink"
	"github.com/matzehuels/netweave/pkg/writer"
)

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "limit must be a non-negative integer, got %q", v))
			return
		}
		limit = n
	}
	records, err := s.opts.Store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// handleCreate accepts circuit JSON, or Spectre text when the content type
// is text/plain.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read body"))
		return
	}

	var c *netlist.Circuit
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "text/plain" {
		c, err = reader.Reads(string(body))
	} else {
		c, err = netlist.CircuitFromJSON(body)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := c.Graph(); err != nil {
		s.writeError(w, r, err)
		return
	}

	rec, err := s.opts.Store.Save(r.Context(), r.URL.Query().Get("name"), c)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.opts.Logger.Info("stored circuit", "id", rec.ID, "name", rec.Name, "instances", rec.Instances)
	w.Header().Set("Location", "/v1/circuits/"+rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

// load fetches the circuit named by the {id} URL parameter with its JSON
// encoding, writing the error response itself on failure.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (*netlist.Circuit, []byte, bool) {
	c, _, err := s.opts.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return nil, nil, false
	}
	data, err := c.ToJSON()
	if err != nil {
		s.writeError(w, r, err)
		return nil, nil, false
	}
	return c, data, true
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	_, data, ok := s.load(w, r)
	if !ok {
		return
	}
	writeRaw(w, "application/json", data)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.opts.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNetlist(w http.ResponseWriter, r *http.Request) {
	dialect := r.URL.Query().Get("dialect")
	if dialect == "" {
		dialect = s.opts.DefaultDialect
	}
	wr, err := writer.ForDialect(dialect)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c, data, ok := s.load(w, r)
	if !ok {
		return
	}

	key := s.opts.Keyer.NetlistKey(cache.Hash(data), strings.ToLower(dialect))
	text, _, err := cache.Fetch(r.Context(), s.opts.Cache, key, s.opts.TTL, func() ([]byte, error) {
		return []byte(wr.Writes(c)), nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeRaw(w, "text/plain; charset=utf-8", text)
}

func (s *Server) handleCounts(w http.ResponseWriter, r *http.Request) {
	c, _, ok := s.load(w, r)
	if !ok {
		return
	}
	counts, err := c.CountInstances()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = "dot"
	}
	if format != "dot" && format != "svg" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "unknown graph format %q (available: dot, svg)", format))
		return
	}
	detailed, _ := strconv.ParseBool(q.Get("detailed"))

	c, data, ok := s.load(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	dot, _, err := cache.Fetch(ctx, s.opts.Cache, s.opts.Keyer.GraphKey(cache.Hash(data), cache.GraphKeyOpts{Detailed: detailed}), s.opts.TTL,
		func() ([]byte, error) {
			g, err := c.Graph()
			if err != nil {
				return nil, err
			}
			return []byte(nodelink.ToDOT(g, nodelink.Options{Detailed: detailed})), nil
		})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if format == "dot" {
		writeRaw(w, "text/vnd.graphviz; charset=utf-8", dot)
		return
	}

	key := s.opts.Keyer.ArtifactKey(cache.Hash(dot), cache.ArtifactKeyOpts{Format: "svg"})
	svg, _, err := cache.Fetch(ctx, s.opts.Cache, key, s.opts.TTL, func() ([]byte, error) {
		return nodelink.RenderSVG(ctx, string(dot))
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeRaw(w, "image/svg+xml", svg)
}
