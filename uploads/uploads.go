package uploads

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"evenza/globals"
	"evenza/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

// Upload folders, keyed by the form's context field.
var folders = map[string]string{
	"Events":           "eventpic",
	"EventCollections": "collectionpic",
	"Verification":     "verificationpic",
	"listings":         "listingpic",
}

const chunkSize = 64 << 10

// Task is the public view of one upload's state. Tasks are addressed by a
// stable generated id, never by slice position, so removing one upload cannot
// shift another's identity.
type Task struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
}

type taskState struct {
	Task
	cancel context.CancelFunc
}

// Registry tracks all in-flight and finished upload tasks.
type Registry struct {
	mu    sync.Mutex
	tasks map[string]*taskState
}

func NewRegistry() *Registry {
	return &Registry{tasks: make(map[string]*taskState)}
}

// DefaultRegistry backs the HTTP handlers.
var DefaultRegistry = NewRegistry()

func (reg *Registry) add(filename string, cancel context.CancelFunc) string {
	id := uuid.New().String()
	reg.mu.Lock()
	reg.tasks[id] = &taskState{
		Task:   Task{ID: id, Filename: filename, Status: "uploading"},
		cancel: cancel,
	}
	reg.mu.Unlock()
	return id
}

// Get returns a snapshot of one task.
func (reg *Registry) Get(id string) (Task, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	state, ok := reg.tasks[id]
	if !ok {
		return Task{}, false
	}
	return state.Task, true
}

func (reg *Registry) setProgress(id string, progress int) {
	reg.mu.Lock()
	if state, ok := reg.tasks[id]; ok && state.Status == "uploading" {
		state.Progress = progress
	}
	reg.mu.Unlock()
}

func (reg *Registry) finish(id, url string, err error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	state, ok := reg.tasks[id]
	if !ok {
		return
	}
	if err != nil {
		if state.Status != "canceled" {
			state.Status = "failed"
			state.Error = err.Error()
		}
		return
	}
	state.Status = "done"
	state.Progress = 100
	state.URL = url
}

// Cancel stops further progress on a task. Best effort: bytes already
// written stay on disk until the writer notices and cleans up.
func (reg *Registry) Cancel(id string) bool {
	reg.mu.Lock()
	state, ok := reg.tasks[id]
	if ok && state.Status == "uploading" {
		state.Status = "canceled"
		state.cancel()
	}
	reg.mu.Unlock()
	return ok
}

// Start buffers the file content and writes it out in chunks on its own
// goroutine, reporting progress as it goes.
func (reg *Registry) Start(content []byte, filename, folder string) string {
	ctx, cancel := context.WithCancel(context.Background())
	id := reg.add(filename, cancel)

	go func() {
		defer cancel()
		url, err := reg.write(ctx, id, content, filename, folder)
		reg.finish(id, url, err)
	}()
	return id
}

func (reg *Registry) write(ctx context.Context, id string, content []byte, filename, folder string) (string, error) {
	dir := filepath.Join(globals.UploadRoot, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	ext := filepath.Ext(filename)
	name := id + ext
	path := filepath.Join(dir, name)
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	total := len(content)
	reader := bytes.NewReader(content)
	written := 0
	buf := make([]byte, chunkSize)
	for {
		select {
		case <-ctx.Done():
			os.Remove(path)
			return "", ctx.Err()
		default:
		}

		n, err := reader.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return "", werr
			}
			written += n
			if total > 0 {
				reg.setProgress(id, written*100/total)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}

	if _, err := utils.CreateThumb(id, dir, ext, 300); err != nil {
		log.Printf("thumbnail generation failed for %s: %v", name, err)
	}
	return "/static/" + folder + "/" + name, nil
}

// UploadImages accepts multiple images in one multipart request and returns a
// task id per file.
func UploadImages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Unable to parse form", http.StatusBadRequest)
		return
	}

	folder, ok := folders[r.FormValue("context")]
	if !ok {
		folder = folders["Events"]
	}
	if r.FormValue("context") == "listings" {
		if userID, ok := r.Context().Value(globals.UserIDKey).(string); ok && userID != "" {
			folder = filepath.Join(folder, userID)
		}
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		http.Error(w, "No images supplied", http.StatusBadRequest)
		return
	}

	var tasks []utils.M
	for _, header := range files {
		if !utils.ValidateImageFileType(w, header) {
			return
		}
		file, err := header.Open()
		if err != nil {
			http.Error(w, "Error reading file", http.StatusInternalServerError)
			return
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			http.Error(w, "Error reading file", http.StatusInternalServerError)
			return
		}

		id := DefaultRegistry.Start(content, header.Filename, folder)
		tasks = append(tasks, utils.M{"taskId": id, "filename": header.Filename})
	}

	utils.RespondWithJSON(w, http.StatusAccepted, utils.M{"tasks": tasks})
}

func GetUploadStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	task, ok := DefaultRegistry.Get(ps.ByName("taskid"))
	if !ok {
		http.Error(w, "Upload task not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, task)
}

func CancelUpload(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !DefaultRegistry.Cancel(ps.ByName("taskid")) {
		http.Error(w, "Upload task not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
