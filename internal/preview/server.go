// Package preview serves the latest clipboard image to a local browser. The
// image is kept in memory only.
package preview

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"strconv"
	"sync"
	"time"

	"snapmark/internal/clipboard"
)

const maxClients = 5

const page = `<!DOCTYPE html>
<html>
<head>
    <title>snapmark</title>
    <style>
        body {
            margin: 0;
            padding: 20px;
            background: #1e1e1e;
            display: flex;
            flex-direction: column;
            justify-content: center;
            align-items: center;
            min-height: 100vh;
        }
        img {
            max-width: 90vw;
            max-height: 85vh;
            box-shadow: 0 4px 20px rgba(0,0,0,0.5);
        }
        .waiting {
            color: #888;
            font-family: Arial;
            font-size: 24px;
        }
        .save-btn {
            margin-top: 20px;
            padding: 12px 24px;
            background: #007ACC;
            color: white;
            border: none;
            border-radius: 6px;
            font-size: 16px;
            cursor: pointer;
        }
        .save-btn:hover {
            background: #005F9E;
        }
    </style>
</head>
<body>
    <img id="shot" src="/image" onerror="this.style.display='none';document.querySelector('.waiting').style.display='block'">
    <div class="waiting" style="display:none">Waiting for a capture...</div>
    <button class="save-btn" onclick="saveImage()">Save</button>
    <script>
        const img = document.getElementById('shot');
        const waiting = document.querySelector('.waiting');
        new EventSource('/events').onmessage = function(event) {
            img.src = '/image?v=' + event.data;
            img.style.display = 'block';
            waiting.style.display = 'none';
        };
        function saveImage() {
            const link = document.createElement('a');
            link.href = '/image?t=' + Date.now();
            link.download = 'snapmark_' + new Date().toISOString().replace(/[:.]/g, '-').slice(0, 19) + '.png';
            link.click();
        }
    </script>
</body>
</html>`

// Server is the browser preview. Publish is safe for concurrent use.
type Server struct {
	addr string

	mu      sync.RWMutex
	latest  []byte
	version int

	clientsMu sync.Mutex
	clients   []chan string

	srv *http.Server
	url string
}

func New(addr string) *Server {
	return &Server{addr: addr}
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("preview server: %w", err)
	}
	s.url = "http://" + ln.Addr().String()
	s.srv = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Preview server stopped: %v", err)
		}
	}()
	log.Printf("Preview server listening on %s", s.url)
	return nil
}

func (s *Server) URL() string { return s.url }

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handlePage)
	mux.HandleFunc("/image", s.handleImage)
	mux.HandleFunc("/events", s.handleEvents)
	return mux
}

// Publish replaces the served image and notifies open pages.
func (s *Server) Publish(img image.Image) {
	data, err := clipboard.EncodePNG(img)
	if err != nil {
		log.Printf("Preview: %v", err)
		return
	}
	s.mu.Lock()
	s.latest = data
	s.version++
	v := s.version
	s.mu.Unlock()

	s.notifyClients(strconv.Itoa(v))
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(page))
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	data := s.latest
	s.mu.RUnlock()

	if data == nil {
		http.Error(w, "No image yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Write(data)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	clientChan := make(chan string, 10)
	s.clientsMu.Lock()
	if len(s.clients) >= maxClients {
		close(s.clients[0])
		s.clients = s.clients[1:]
	}
	s.clients = append(s.clients, clientChan)
	s.clientsMu.Unlock()

	defer s.removeClient(clientChan)

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-clientChan:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) removeClient(ch chan string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for i, c := range s.clients {
		if c == ch {
			s.clients = append(s.clients[:i], s.clients[i+1:]...)
			close(ch)
			return
		}
	}
}

func (s *Server) notifyClients(msg string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for _, ch := range s.clients {
		select {
		case ch <- msg:
		default:
		}
	}
}

func (s *Server) clientCount() int {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	return len(s.clients)
}

// OpenBrowser opens the preview page with the platform's URL handler.
func (s *Server) OpenBrowser() {
	if s.url == "" {
		log.Println("Preview server not started")
		return
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", s.url)
	case "darwin":
		cmd = exec.Command("open", s.url)
	default:
		cmd = exec.Command("xdg-open", s.url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
