package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"intelligence-srv/internal/model"
	"intelligence-srv/internal/report"
	"intelligence-srv/internal/report/repository"
	"intelligence-srv/pkg/minio"
)

type fakeRepo struct {
	mu      sync.Mutex
	reports map[string]model.Report
	order   []string
	now     func() time.Time
}

func newFakeRepo(now func() time.Time) *fakeRepo {
	return &fakeRepo{reports: map[string]model.Report{}, now: now}
}

func (f *fakeRepo) CreateReport(_ context.Context, o repository.CreateReportOptions) (model.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := model.Report{
		ID: o.ID, UserID: o.UserID, Title: o.Title, Source: o.Source, BatchID: o.BatchID,
		ParamsHash: o.ParamsHash, SourceURLs: o.SourceURLs,
		Movie: o.Movie, Hero: o.Hero, Director: o.Director,
		Status: report.StatusProcessing, CreatedAt: f.now(), UpdatedAt: f.now(),
	}
	f.reports[r.ID] = r
	f.order = append(f.order, r.ID)
	return r, nil
}

func (f *fakeRepo) GetReportByID(_ context.Context, id string) (model.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[id]
	if !ok {
		return model.Report{}, repository.ErrReportNotFound
	}
	return r, nil
}

func (f *fakeRepo) FindByParamsHash(_ context.Context, o repository.FindByParamsHashOptions) (*model.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.order) - 1; i >= 0; i-- {
		r := f.reports[f.order[i]]
		if r.ParamsHash != o.ParamsHash || r.Status != o.Status {
			continue
		}
		if !o.CreatedAfter.IsZero() && !r.CreatedAt.After(o.CreatedAfter) {
			continue
		}
		return &r, nil
	}
	return nil, nil
}

func (f *fakeRepo) UpdateCompleted(_ context.Context, o repository.UpdateCompletedOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[o.ReportID]
	if !ok {
		return repository.ErrReportNotFound
	}
	completed := o.CompletedAt
	r.Status = report.StatusCompleted
	r.FileURL = o.FileURL
	r.FileSizeBytes = o.FileSizeBytes
	r.TotalMentions = o.TotalMentions
	r.NegativeMentions = o.NegativeMentions
	r.SkippedRecords = o.SkippedRecords
	r.SpikeDetected = o.SpikeDetected
	r.AttackerCount = o.AttackerCount
	r.GenerationTimeMs = o.GenerationTimeMs
	r.CompletedAt = &completed
	f.reports[r.ID] = r
	return nil
}

func (f *fakeRepo) UpdateFailed(ctx context.Context, o repository.UpdateFailedOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[o.ReportID]
	if !ok {
		return repository.ErrReportNotFound
	}
	r.Status = report.StatusFailed
	r.ErrorMessage = o.ErrorMessage
	f.reports[r.ID] = r
	return nil
}

func (f *fakeRepo) ListReports(_ context.Context, o repository.ListReportsOptions) ([]model.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Report
	for i := len(f.order) - 1; i >= 0; i-- {
		r := f.reports[f.order[i]]
		if o.Status != "" && r.Status != o.Status {
			continue
		}
		out = append(out, r)
	}
	if o.Offset >= len(out) {
		return nil, nil
	}
	out = out[o.Offset:]
	if len(out) > o.Limit {
		out = out[:o.Limit]
	}
	return out, nil
}

func (f *fakeRepo) CountReports(_ context.Context, o repository.ListReportsOptions) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.reports {
		if o.Status == "" || r.Status == o.Status {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) get(id string) model.Report {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reports[id]
}

type fakeCache struct {
	mu      sync.Mutex
	content map[string][]byte
	locks   map[string]bool
	lockErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{content: map[string][]byte{}, locks: map[string]bool{}}
}

func (f *fakeCache) GetContent(_ context.Context, id string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.content[id]
	if !ok {
		return nil, repository.ErrCacheMiss
	}
	return c, nil
}

func (f *fakeCache) SetContent(_ context.Context, id string, content []byte, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.content[id] = content
	return nil
}

func (f *fakeCache) AcquireLock(_ context.Context, key string, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lockErr != nil {
		return false, f.lockErr
	}
	if f.locks[key] {
		return false, nil
	}
	f.locks[key] = true
	return true, nil
}

func (f *fakeCache) ReleaseLock(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.locks, key)
	return nil
}

type fakeMinIO struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploadErr error
	// onDownload runs before every download.
	onDownload func()
}

func newFakeMinIO() *fakeMinIO {
	return &fakeMinIO{objects: map[string][]byte{}}
}

func (f *fakeMinIO) put(bucket, object, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[bucket+"/"+object] = []byte(body)
}

func (f *fakeMinIO) Connect(context.Context) error     { return nil }
func (f *fakeMinIO) HealthCheck(context.Context) error { return nil }
func (f *fakeMinIO) Close() error                      { return nil }

func (f *fakeMinIO) EnsureBucket(context.Context, string) error { return nil }

func (f *fakeMinIO) UploadFile(_ context.Context, req *minio.UploadRequest) (*minio.FileInfo, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	body, err := io.ReadAll(req.Reader)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[req.BucketName+"/"+req.ObjectName] = body
	return &minio.FileInfo{BucketName: req.BucketName, ObjectName: req.ObjectName, Size: int64(len(body))}, nil
}

func (f *fakeMinIO) DownloadFile(ctx context.Context, req *minio.DownloadRequest) (io.ReadCloser, *minio.FileInfo, error) {
	if f.onDownload != nil {
		f.onDownload()
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	body, ok := f.objects[req.BucketName+"/"+req.ObjectName]
	if !ok {
		return nil, nil, minio.NewObjectNotFoundError(req.ObjectName)
	}
	info := &minio.FileInfo{BucketName: req.BucketName, ObjectName: req.ObjectName, Size: int64(len(body))}
	return io.NopCloser(bytes.NewReader(body)), info, nil
}

func (f *fakeMinIO) GetPresignedDownloadURL(_ context.Context, req *minio.PresignedURLRequest) (*minio.PresignedURLResponse, error) {
	return &minio.PresignedURLResponse{
		URL:       "https://minio.local/" + req.BucketName + "/" + req.ObjectName + "?sig=x",
		ExpiresAt: time.Date(2024, 5, 2, 0, 30, 0, 0, time.UTC),
	}, nil
}

func (f *fakeMinIO) ListFiles(_ context.Context, req *minio.ListRequest) (*minio.ListResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var files []*minio.FileInfo
	for k, body := range f.objects {
		bucket, object, _ := strings.Cut(k, "/")
		if bucket == req.BucketName && strings.HasPrefix(object, req.Prefix) {
			files = append(files, &minio.FileInfo{BucketName: bucket, ObjectName: object, Size: int64(len(body))})
		}
	}
	if len(files) == 0 {
		return nil, minio.NewBucketNotFoundError(req.BucketName)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].ObjectName < files[j].ObjectName })
	return &minio.ListResponse{Files: files, TotalCount: len(files)}, nil
}

type fakeProducer struct {
	mu     sync.Mutex
	events []report.ResultEvent
}

func (f *fakeProducer) PublishResult(ctx context.Context, evt report.ResultEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evt)
	return nil
}

func (f *fakeProducer) all() []report.ResultEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]report.ResultEvent(nil), f.events...)
}

type fakeAlerts struct {
	mu     sync.Mutex
	alerts []report.Alert
	err    error
}

func (f *fakeAlerts) PublishAlert(_ context.Context, a report.Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.alerts = append(f.alerts, a)
	return nil
}

var errBoom = errors.New("boom")
