// Package check validates template files and reports scan errors as
// diagnostics. A Checker runs check jobs asynchronously and keeps their
// results queryable by id.
package check

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/marqlang/marq/scan"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

type Request struct {
	ID        string
	Path      string   // directory to walk for template files
	Files     []string // explicit files, used when Path is empty
	CreatedAt time.Time
}

// Diagnostic is one scan error located in a file. Line and Column are
// 1-based; EndLine and EndColumn point just past the offending range.
type Diagnostic struct {
	File      string
	Code      string
	Message   string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.File, d.Line, d.Column, d.Code, d.Message)
}

type Result struct {
	ID          string
	Status      Status
	Request     Request
	Diagnostics []Diagnostic
	Error       string
	Errors      []string
	StartedAt   time.Time
	EndedAt     time.Time
	Progress    int
	Total       int
}

func (r *Result) ProgressPercent() int {
	if r.Total == 0 {
		return 0
	}
	return (r.Progress * 100) / r.Total
}

type Checker struct {
	mu       sync.RWMutex
	checks   map[string]*Result
	requests chan Request
	nextID   int
}

func New() *Checker {
	c := &Checker{
		checks:   make(map[string]*Result),
		requests: make(chan Request, 100),
	}
	go c.run()
	return c
}

func (c *Checker) run() {
	for req := range c.requests {
		c.processCheck(req)
	}
}

type checkResult struct {
	diagnostics []Diagnostic
	errors      []string
}

func (c *Checker) processCheck(req Request) {
	c.mu.Lock()
	result := c.checks[req.ID]
	result.Status = StatusInProgress
	result.StartedAt = time.Now()
	c.mu.Unlock()

	var cr checkResult
	if req.Path != "" {
		cr = c.checkDirectory(req.ID, req.Path)
	} else if len(req.Files) > 0 {
		cr = c.checkFiles(req.ID, req.Files)
	} else {
		cr.errors = append(cr.errors, "no path or files provided")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	result.EndedAt = time.Now()
	result.Diagnostics = cr.diagnostics
	result.Errors = cr.errors
	if len(cr.errors) > 0 {
		result.Status = StatusFailed
		result.Error = cr.errors[0]
	} else {
		result.Status = StatusCompleted
	}
}

// isTemplateFile reports whether path is checked: ".marq" files scan in
// concise mode, ".html" files in bracket mode.
func isTemplateFile(path string) bool {
	switch filepath.Ext(path) {
	case ".marq", ".html":
		return true
	}
	return false
}

func listTemplateFiles(path string) (files, errors []string) {
	err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			errors = append(errors, fmt.Sprintf("walk %s: %v", p, err))
			return nil
		}
		if !info.IsDir() && isTemplateFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		errors = append(errors, fmt.Sprintf("walk %s: %v", path, err))
	}
	return files, errors
}

// CheckFiles scans every file with a pool of up to workers goroutines
// and returns the aggregated diagnostics, sorted by file and position,
// plus any read failures.
func CheckFiles(files []string, workers int) ([]Diagnostic, []string) {
	return checkFilesPool(files, workers, nil)
}

// CheckDirectory walks path for template files and checks them as
// CheckFiles does.
func CheckDirectory(path string, workers int) ([]Diagnostic, []string) {
	files, errors := listTemplateFiles(path)
	diagnostics, errs := checkFilesPool(files, workers, nil)
	return diagnostics, append(errors, errs...)
}

func checkFilesPool(files []string, workers int, onDone func(done int)) ([]Diagnostic, []string) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	var (
		mu          sync.Mutex
		wg          sync.WaitGroup
		diagnostics []Diagnostic
		errors      []string
		done        int
	)
	sem := make(chan struct{}, workers)
	for _, file := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(file string) {
			defer wg.Done()
			defer func() { <-sem }()

			fileDiags, err := checkFile(file)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errors = append(errors, fmt.Sprintf("read %s: %v", file, err))
			}
			diagnostics = append(diagnostics, fileDiags...)
			done++
			if onDone != nil {
				onDone(done)
			}
		}(file)
	}
	wg.Wait()

	sortDiagnostics(diagnostics)
	return diagnostics, errors
}

func checkFile(path string) ([]Diagnostic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var opts []scan.Option
	if filepath.Ext(path) == ".html" {
		opts = append(opts, scan.WithHTMLMode())
	}
	diagnostics := CheckSource(string(data), opts...)
	for i := range diagnostics {
		diagnostics[i].File = path
	}
	return diagnostics, nil
}

func (c *Checker) checkDirectory(id, path string) checkResult {
	files, errors := listTemplateFiles(path)
	cr := c.checkFiles(id, files)
	cr.errors = append(errors, cr.errors...)
	return cr
}

func (c *Checker) checkFiles(id string, files []string) checkResult {
	c.mu.Lock()
	c.checks[id].Total = len(files)
	c.mu.Unlock()

	var cr checkResult
	cr.diagnostics, cr.errors = checkFilesPool(files, 0, func(done int) {
		c.mu.Lock()
		c.checks[id].Progress = done
		c.mu.Unlock()
	})
	return cr
}

// CheckSource scans src synchronously and returns its diagnostics with
// the File field left empty. The scanner reports at most one error per
// source, so the result has zero or one entry.
func CheckSource(src string, opts ...scan.Option) []Diagnostic {
	var l errorListener
	scan.New(opts...).Parse(src, &l)
	if l.err == nil {
		return nil
	}
	line, column := scan.Location(src, l.err.Pos)
	endLine, endColumn := line, column
	if l.err.EndPos > l.err.Pos {
		endLine, endColumn = scan.Location(src, l.err.EndPos)
	}
	return []Diagnostic{{
		Code:      l.err.Code,
		Message:   l.err.Message,
		Line:      line,
		Column:    column,
		EndLine:   endLine,
		EndColumn: endColumn,
	}}
}

type errorListener struct {
	scan.BaseListener
	err *scan.Error
}

func (l *errorListener) OnError(err *scan.Error) { l.err = err }

func (c *Checker) Submit(req Request) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	req.ID = fmt.Sprintf("%d", c.nextID)
	req.CreatedAt = time.Now()

	c.checks[req.ID] = &Result{
		ID:      req.ID,
		Status:  StatusPending,
		Request: req,
	}

	c.requests <- req
	return req.ID
}

// Get returns a snapshot of the check's result. The worker keeps
// mutating the stored Result until the check finishes, so the live
// pointer never leaves the mutex.
func (c *Checker) Get(id string) (*Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result, ok := c.checks[id]
	if !ok {
		return nil, false
	}
	snapshot := *result
	return &snapshot, true
}

func (c *Checker) List() []*Result {
	c.mu.RLock()
	defer c.mu.RUnlock()
	results := make([]*Result, 0, len(c.checks))
	for _, r := range c.checks {
		snapshot := *r
		results = append(results, &snapshot)
	}
	return results
}

// AllDiagnostics returns the diagnostics of every completed check,
// ordered by file, line and column.
func (c *Checker) AllDiagnostics() []Diagnostic {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var all []Diagnostic
	for _, result := range c.checks {
		if result.Status == StatusCompleted {
			all = append(all, result.Diagnostics...)
		}
	}
	sortDiagnostics(all)
	return all
}

func sortDiagnostics(diagnostics []Diagnostic) {
	sort.Slice(diagnostics, func(i, j int) bool {
		a, b := diagnostics[i], diagnostics[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}
