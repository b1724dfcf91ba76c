package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"simpleparser/internal/ast"
	"simpleparser/internal/buildpipeline"
	"simpleparser/internal/diag"
	"simpleparser/internal/source"
	"simpleparser/internal/trace"
)

// DefaultExtensions are used when DirOptions.Extensions is empty.
var DefaultExtensions = []string{".js"}

type DirOptions struct {
	Options
	// Jobs caps concurrent parses; <= 0 means GOMAXPROCS.
	Jobs       int
	Extensions []string
	Progress   buildpipeline.ProgressSink
}

// ParseDirResult содержит результат парсинга одного файла
type ParseDirResult struct {
	Path    string        // путь к файлу как он найден при обходе
	FileID  source.FileID // для незагруженного файла указывает на пустую виртуальную запись
	Program *ast.Program
	Bag     *diag.Bag
	Err     error // *parser.ParseError или nil
	Cached  bool
	Elapsed time.Duration
}

// ListSourceFiles возвращает отсортированный список файлов с нужными расширениями.
// Скрытые каталоги (.git и т.п.) пропускаются.
func ListSourceFiles(dir string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		for _, ext := range exts {
			if strings.HasSuffix(path, ext) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ParseDir парсит все подходящие файлы в директории параллельно.
// Results follow the sorted path order regardless of scheduling.
func ParseDir(ctx context.Context, dir string, opts DirOptions) (*source.FileSet, []ParseDirResult, error) {
	tracer := trace.FromContext(ctx)
	dirSpan := trace.Begin(tracer, trace.ScopeCommand, "parse-dir", "", trace.ParentID(ctx))
	dirSpan.Set("dir", dir)
	defer dirSpan.End("")
	ctx = trace.WithSpan(ctx, dirSpan)

	files, err := ListSourceFiles(dir, opts.Extensions)
	if err != nil {
		return nil, nil, err
	}
	dirSpan.Count("files", len(files))

	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Предзагружаем все файлы: FileSet не потокобезопасен на запись
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		buildpipeline.Emit(opts.Progress, buildpipeline.Event{File: path, Stage: buildpipeline.StageLoad, Status: buildpipeline.StatusQueued})
		fileID, err := fileSet.Load(path)
		if err != nil {
			// пустой виртуальный файл, чтобы диагностике было на что сослаться
			fileID = fileSet.AddVirtual(path, nil)
			loadErrors[path] = err
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	dirSpan.Count("jobs", jobs)

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]ParseDirResult, len(files))
	fileOpts := opts.Options
	fileOpts.Timer = nil

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(opts.MaxDiagnostics)
				diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOLoadFileError, source.Span{File: fileIDs[path]}, "failed to load file: "+loadErr.Error()).Emit()
				results[i] = ParseDirResult{Path: path, FileID: fileIDs[path], Bag: bag, Err: loadErr}
				buildpipeline.Emit(opts.Progress, buildpipeline.Event{File: path, Stage: buildpipeline.StageLoad, Status: buildpipeline.StatusError, Err: loadErr})
				return nil
			}

			file := fileSet.Get(fileIDs[path])
			span := trace.Begin(tracer, trace.ScopeFile, "parse-file", path, dirSpan.ID())
			buildpipeline.Emit(opts.Progress, buildpipeline.Event{File: path, Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking})

			start := time.Now()
			res := parseLoaded(trace.WithSpan(gctx, span), fileSet, file, fileOpts)
			elapsed := time.Since(start)

			results[i] = ParseDirResult{
				Path:    path,
				FileID:  file.ID,
				Program: res.Program,
				Bag:     res.Bag,
				Err:     res.Err,
				Cached:  res.Cached,
				Elapsed: elapsed,
			}

			status := buildpipeline.StatusDone
			switch {
			case res.Err != nil:
				status = buildpipeline.StatusError
				span.End("error")
			case res.Cached:
				status = buildpipeline.StatusCached
				span.End("cached")
			default:
				span.End("")
			}
			buildpipeline.Emit(opts.Progress, buildpipeline.Event{
				File:    path,
				Stage:   buildpipeline.StageParse,
				Status:  status,
				Err:     res.Err,
				Elapsed: elapsed,
			})
			return nil
		})
	}

	// Ждём завершения всех горутин
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// MergeBags collects every per-file bag into one sorted bag.
func MergeBags(results []ParseDirResult) *diag.Bag {
	out := diag.NewBag(0)
	for _, r := range results {
		if r.Bag != nil {
			out.Merge(r.Bag)
		}
	}
	out.Sort()
	return out
}
