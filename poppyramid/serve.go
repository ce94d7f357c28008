// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log"
	"net"
	"net/http"
	"os"
	"os/exec"
	"sync"

	"github.com/aclements/popviz/dataview"
	"github.com/aclements/popviz/interactivity"
	"github.com/aclements/popviz/render"
	"github.com/aclements/popviz/settings"
	"github.com/aclements/popviz/visual"
	"github.com/kballard/go-shellquote"
	"golang.org/x/sync/errgroup"
)

// A server hosts one visual in a web page. Clicks on the page are
// posted back and applied to the visual, which is then redrawn.
//
// The visual is not safe for concurrent use, so every request holds
// mu while it touches v.
type server struct {
	title string

	mu     sync.Mutex
	v      *visual.Visual
	update visual.UpdateOptions
}

func newServer(title string, v *visual.Visual, update visual.UpdateOptions) *server {
	return &server{title: title, v: v, update: update}
}

func (s *server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.index)
	mux.HandleFunc("/click", s.click)
	mux.HandleFunc("/settings", s.objects)
	mux.HandleFunc("/table", s.table)
	return mux
}

const pageHeader = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body>
`

const pageFooter = `</body>
</html>
`

func (s *server) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, pageHeader, html.EscapeString(s.title))
	s.mu.Lock()
	err := s.v.WriteSVG(&buf, "/click")
	s.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	buf.WriteString(pageFooter)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

type clickReply struct {
	Handled   bool     `json:"handled"`
	Selection []string `json:"selection"`
}

func (s *server) click(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var c render.Click
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, fmt.Sprintf("bad click: %v", err), http.StatusBadRequest)
		return
	}
	kind, err := interactivity.ParseEventKind(c.Kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ev := interactivity.Event{Kind: kind, Index: c.Index, Label: c.Label, Multi: c.Multi}

	s.mu.Lock()
	reply := clickReply{Handled: s.v.Click(ev), Selection: s.v.Selection()}
	s.mu.Unlock()
	log.Printf("click %s index=%d label=%q multi=%v: handled=%v, %d selected", kind, c.Index, c.Label, c.Multi, reply.Handled, len(reply.Selection))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reply)
}

// objects replaces the visual's settings objects with a YAML
// document, as the host does when the user edits the property pane.
// GET returns the current property-pane objects.
func (s *server) objects(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.Lock()
		objs := settings.ToObjects(s.v.Settings())
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/yaml")
		if err := settings.Encode(w, objs); err != nil {
			log.Printf("writing settings: %v", err)
		}
	case http.MethodPost, http.MethodPut:
		objs, err := settings.Decode(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		s.update.Objects = objs
		err = s.v.Update(s.update)
		s.mu.Unlock()
		if err != nil {
			var iie *dataview.InvalidInputError
			code := http.StatusInternalServerError
			if errors.As(err, &iie) {
				code = http.StatusUnprocessableEntity
			}
			http.Error(w, err.Error(), code)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.Header().Set("Allow", "GET, POST, PUT")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *server) table(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	s.mu.Lock()
	err := s.v.WriteTable(&buf)
	s.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(buf.Bytes())
}

// serve runs s on addr until ctx is done. If open is set, it starts
// $BROWSER on the page.
func serve(ctx context.Context, addr string, s *server, open bool) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	url := "http://" + ln.Addr().String() + "/"
	log.Printf("serving on %s", url)

	srv := &http.Server{Handler: s.handler()}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return srv.Shutdown(context.Background())
	})
	if open {
		g.Go(func() error {
			if err := openBrowser(url); err != nil {
				log.Printf("opening browser: %v", err)
			}
			return nil
		})
	}
	return g.Wait()
}

// openBrowser runs the command in $BROWSER with url appended.
func openBrowser(url string) error {
	args, err := shellquote.Split(os.Getenv("BROWSER"))
	if err != nil {
		return fmt.Errorf("parsing $BROWSER: %w", err)
	}
	if len(args) == 0 {
		return fmt.Errorf("$BROWSER is not set")
	}
	cmd := exec.Command(args[0], append(args[1:], url)...)
	cmd.Stdout, cmd.Stderr = os.Stderr, os.Stderr
	return cmd.Start()
}
