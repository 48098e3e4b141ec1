// Package codegen records browser tool calls and turns them into runnable
// go-rod test files.
package codegen

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"webgate/internal/appdirs"
)

// Options configures a recording session.
type Options struct {
	// OutputPath is the directory the generated test is written to. Empty
	// falls back to the downloads directory.
	OutputPath string

	// TestNamePrefix names the generated test function and file.
	TestNamePrefix string

	// IncludeComments annotates each generated step with the tool call that
	// produced it.
	IncludeComments bool
}

// Action is one recorded tool invocation.
type Action struct {
	Tool string
	Args map[string]interface{}
	At   time.Time
}

// Session is an in-progress recording.
type Session struct {
	ID        string
	Options   Options
	Actions   []Action
	StartedAt time.Time
}

// Recorder tracks codegen sessions. At most one session records at a time.
type Recorder struct {
	mu       sync.Mutex
	sessions map[string]*Session
	activeID string
}

func NewRecorder() *Recorder {
	return &Recorder{sessions: make(map[string]*Session)}
}

// Start opens a new recording session and makes it the active one.
func (r *Recorder) Start(opts Options) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.activeID != "" {
		return nil, fmt.Errorf("codegen session %s is already recording; end or clear it first", r.activeID)
	}

	s := &Session{
		ID:        uuid.NewString(),
		Options:   opts,
		StartedAt: time.Now(),
	}
	r.sessions[s.ID] = s
	r.activeID = s.ID
	return s, nil
}

// Record appends a tool call to the active session. A no-op when nothing is
// recording.
func (r *Recorder) Record(tool string, args map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.activeID == "" {
		return
	}
	s, ok := r.sessions[r.activeID]
	if !ok {
		return
	}

	copied := make(map[string]interface{}, len(args))
	for k, v := range args {
		copied[k] = v
	}
	s.Actions = append(s.Actions, Action{Tool: tool, Args: copied, At: time.Now()})
}

// Get returns a session by ID.
func (r *Recorder) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// ActiveID returns the ID of the currently recording session, or "".
func (r *Recorder) ActiveID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeID
}

// End stops the session, writes the generated test file and forgets the
// session. It returns the written path and the number of recorded steps.
func (r *Recorder) End(id string) (string, int, error) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if !ok {
		r.mu.Unlock()
		return "", 0, fmt.Errorf("codegen session %s not found", id)
	}
	delete(r.sessions, id)
	if r.activeID == id {
		r.activeID = ""
	}
	r.mu.Unlock()

	dir := strings.TrimSpace(s.Options.OutputPath)
	if dir == "" {
		fallback, err := appdirs.DownloadsDir()
		if err != nil {
			return "", 0, fmt.Errorf("codegen output dir: %w", err)
		}
		dir = fallback
	}
	if err := appdirs.EnsureDir(dir); err != nil {
		return "", 0, fmt.Errorf("codegen output dir: %w", err)
	}

	path := filepath.Join(dir, fileNameFor(s))
	if err := os.WriteFile(path, []byte(Generate(s)), 0o644); err != nil {
		return "", 0, fmt.Errorf("write generated test: %w", err)
	}
	return path, len(s.Actions), nil
}

// Clear drops a session without generating anything.
func (r *Recorder) Clear(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	if r.activeID == id {
		r.activeID = ""
	}
	return true
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9_]+`)

func fileNameFor(s *Session) string {
	prefix := strings.TrimSpace(s.Options.TestNamePrefix)
	if prefix == "" {
		prefix = "recorded"
	}
	prefix = strings.ToLower(unsafeFileChars.ReplaceAllString(prefix, "_"))
	short := s.ID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("%s_%s_test.go", prefix, short)
}
