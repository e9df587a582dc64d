// go-qrcode
// Copyright 2014 Tom Harwood

package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	qrcode "github.com/weilsonwonder/go-qrstyle"
	"github.com/weilsonwonder/go-qrstyle/generator"
	"github.com/weilsonwonder/go-qrstyle/render"
)

const maxRequestSize = 1 << 20 // 1 MiB

type serveCmd struct {
	Listen string `help:"HTTP listen address" default:":8080" env:"QRSTYLE_LISTEN"`
}

func (c *serveCmd) Run(gen *generator.Generator, log *logrus.Logger) error {
	srv := newServer(gen, log)
	defer srv.session.Close()

	hs := &http.Server{
		Addr:              c.Listen,
		Handler:           srv.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(shutdown)
	}()

	log.WithField("listen", c.Listen).Info("serving")
	if err := hs.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// server is the preview server. Besides one-shot renders it keeps a live
// session: PUT /session replaces its settings and GET /session.png returns
// the newest committed image.
type server struct {
	gen     *generator.Generator
	log     *logrus.Logger
	canvas  *render.Canvas
	session *generator.Session
}

func newServer(gen *generator.Generator, log *logrus.Logger) *server {
	canvas := render.NewCanvas()
	s := &server{
		gen:     gen,
		log:     log,
		canvas:  canvas,
		session: generator.NewSession(gen, canvas),
	}

	s.session.OnChange(func(res *generator.Result, err error) {
		if err != nil {
			log.WithError(err).Info("session update rejected")
			return
		}
		log.WithField("text", res.Settings.Text).Debug("session updated")
	})

	return s
}

func (s *server) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/render", s.handleRender).Methods("POST")
	r.HandleFunc("/qr.png", s.handleQuick).Methods("GET")
	r.HandleFunc("/session", s.handleSessionUpdate).Methods("PUT")
	r.HandleFunc("/session.png", s.handleSessionImage).Methods("GET")
	r.HandleFunc("/ping", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("OK"))
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// handleRender renders the settings document in the request body.
func (s *server) handleRender(w http.ResponseWriter, req *http.Request) {
	settings, ok := s.readSettings(w, req)
	if !ok {
		return
	}

	s.respondPNG(w, req, settings)
}

// handleQuick renders ?text= with the default style.
func (s *server) handleQuick(w http.ResponseWriter, req *http.Request) {
	text := req.URL.Query().Get("text")
	if text == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing text parameter"))
		return
	}

	s.respondPNG(w, req, generator.DefaultSettings(text))
}

func (s *server) handleSessionUpdate(w http.ResponseWriter, req *http.Request) {
	settings, ok := s.readSettings(w, req)
	if !ok {
		return
	}

	s.session.Update(settings)
	w.WriteHeader(http.StatusAccepted)
}

func (s *server) handleSessionImage(w http.ResponseWriter, req *http.Request) {
	img := s.canvas.Image()
	if img == nil {
		writeError(w, http.StatusNotFound, errors.New("nothing rendered yet"))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := generator.WritePNG(w, img); err != nil {
		s.log.WithError(err).Warn("writing session image")
	}
}

func (s *server) readSettings(w http.ResponseWriter, req *http.Request) (generator.Settings, bool) {
	data, err := io.ReadAll(io.LimitReader(req.Body, maxRequestSize))
	req.Body.Close()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return generator.Settings{}, false
	}

	settings, err := generator.ParseSettings(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return generator.Settings{}, false
	}

	return settings, true
}

func (s *server) respondPNG(w http.ResponseWriter, req *http.Request, settings generator.Settings) {
	res, err := s.gen.Generate(req.Context(), settings)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	data, err := res.PNG()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-QR-Version", strconv.Itoa(res.Matrix.Version()))
	w.Header().Set("X-QR-Level", res.Matrix.Level().String())
	w.Write(data)
}

func statusFor(err error) int {
	var cfgErr *qrcode.ConfigurationError
	var encErr *qrcode.EncodingError

	switch {
	case errors.As(err, &cfgErr), errors.As(err, &encErr):
		return http.StatusBadRequest
	case errors.Is(err, render.ErrCanvasTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
