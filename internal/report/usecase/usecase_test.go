package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"intelligence-srv/internal/intelligence"
	"intelligence-srv/internal/model"
	"intelligence-srv/internal/report"
	"intelligence-srv/pkg/log"
	"intelligence-srv/pkg/paginator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

const batch = `{"author":"raider","comment":"boring story","published_at":"2024-05-01T08:10:00Z","video_title":"Teaser 1","video_type":"Teaser","sentiment":"Negative","language":"te"}
{"author":"raider","comment":"flop hero","published_at":"2024-05-01T09:10:00Z","video_title":"Trailer 1","video_type":"Trailer","sentiment":"Negative","language":"te"}

{"author":"raider","comment":"disaster loading","published_at":"2024-05-01T10:10:00Z","video_title":"Trailer 1","video_type":"Trailer","sentiment":"Negative","language":"te"}
{"author":"fan","comment":"mass","published_at":"2024-05-01T08:30:00Z","video_title":"Teaser 1","video_type":"Teaser","sentiment":"Positive","language":"te"}
{"author":
`

type testDeps struct {
	uc       *implUseCase
	repo     *fakeRepo
	cache    *fakeCache
	minio    *fakeMinIO
	producer *fakeProducer
	alerts   *fakeAlerts
}

func newTestUseCase(t *testing.T) testDeps {
	t.Helper()
	now := func() time.Time { return fixedNow }

	engine, err := intelligence.New(intelligence.DefaultConfig(), intelligence.WithClock(now))
	require.NoError(t, err)

	d := testDeps{
		repo:     newFakeRepo(now),
		cache:    newFakeCache(),
		minio:    newFakeMinIO(),
		producer: &fakeProducer{},
		alerts:   &fakeAlerts{},
	}
	d.minio.put("batches", "mana/part-1.jsonl", batch)
	d.minio.put("batches", "mana/README.txt", "not a batch")

	uc := New(log.NewNop(), d.repo, d.cache, d.minio, engine, d.producer, d.alerts, nil, Config{Bucket: "reports"}).(*implUseCase)
	uc.now = now
	d.uc = uc
	return d
}

func subject() intelligence.Subject {
	return intelligence.Subject{Movie: "Mana Katha", Hero: "H", Director: "D"}
}

func TestProcess(t *testing.T) {
	d := newTestUseCase(t)

	out, err := d.uc.Process(context.Background(), model.SystemScope, report.ProcessInput{
		BatchID:    "b-1",
		SourceURLs: []string{"s3://batches/mana/"},
		Subject:    subject(),
	})
	require.NoError(t, err)

	assert.Equal(t, 4, out.TotalMentions)
	assert.Equal(t, 3, out.NegativeMentions)
	assert.Equal(t, 1, out.Skipped)
	assert.False(t, out.SpikeDetected)
	assert.Equal(t, 1, out.AttackerCount)

	row := d.repo.get(out.ReportID)
	assert.Equal(t, report.StatusCompleted, row.Status)
	assert.Equal(t, model.SourceKafka, row.Source)
	assert.Equal(t, "b-1", row.BatchID)
	assert.Equal(t, []string{"s3://batches/mana/part-1.jsonl"}, row.SourceURLs)
	assert.Equal(t, fmt.Sprintf("s3://reports/reports/%s.json", out.ReportID), row.FileURL)
	require.NotNil(t, row.CompletedAt)

	cached, ok := d.cache.content[out.ReportID]
	require.True(t, ok)
	assert.EqualValues(t, len(cached), row.FileSizeBytes)

	var rendered intelligence.Report
	require.NoError(t, json.Unmarshal(cached, &rendered))
	assert.Equal(t, "Mana Katha", rendered.Movie)
	assert.Equal(t, 1, rendered.Diagnostics.ByReason[intelligence.SkipMalformed])

	events := d.producer.all()
	require.Len(t, events, 1)
	assert.Equal(t, report.StatusCompleted, events[0].Status)
	assert.Equal(t, "b-1", events[0].BatchID)

	require.Len(t, d.alerts.alerts, 1)
	assert.Equal(t, report.AlertKindCoordination, d.alerts.alerts[0].Kind)
	assert.Equal(t, "raider", d.alerts.alerts[0].Attackers[0].Author)
	assert.Equal(t, "Mana Katha", d.alerts.alerts[0].Subject.Movie)
}

func TestProcess_alertFailureDoesNotFailRun(t *testing.T) {
	d := newTestUseCase(t)
	d.alerts.err = errBoom

	out, err := d.uc.Process(context.Background(), model.SystemScope, report.ProcessInput{
		SourceURLs: []string{"s3://batches/mana/part-1.jsonl"},
	})
	require.NoError(t, err)
	assert.Equal(t, report.StatusCompleted, d.repo.get(out.ReportID).Status)
}

func TestProcess_missingObjectFailsRun(t *testing.T) {
	d := newTestUseCase(t)

	out, err := d.uc.Process(context.Background(), model.SystemScope, report.ProcessInput{
		Source:     model.SourceScheduler,
		SourceURLs: []string{"s3://batches/mana/part-1.jsonl", "s3://batches/gone.jsonl"},
	})
	require.ErrorIs(t, err, report.ErrSourceNotFound)

	row := d.repo.get(out.ReportID)
	assert.Equal(t, report.StatusFailed, row.Status)
	assert.Equal(t, model.SourceScheduler, row.Source)
	assert.Contains(t, row.ErrorMessage, "gone.jsonl")

	events := d.producer.all()
	require.Len(t, events, 1)
	assert.Equal(t, report.StatusFailed, events[0].Status)
	assert.Empty(t, d.alerts.alerts)
}

func TestProcess_cancelledRunIsStillMarkedFailed(t *testing.T) {
	d := newTestUseCase(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.minio.onDownload = cancel

	out, err := d.uc.Process(ctx, model.SystemScope, report.ProcessInput{
		BatchID:    "b-2",
		SourceURLs: []string{"s3://batches/mana/part-1.jsonl"},
		Subject:    subject(),
	})
	require.ErrorIs(t, err, context.Canceled)

	row := d.repo.get(out.ReportID)
	assert.Equal(t, report.StatusFailed, row.Status)
	assert.Contains(t, row.ErrorMessage, "context canceled")

	events := d.producer.all()
	require.Len(t, events, 1)
	assert.Equal(t, report.StatusFailed, events[0].Status)
	assert.Equal(t, "b-2", events[0].BatchID)
}

func TestProcess_oversizedLineIsSkippedAsMalformed(t *testing.T) {
	d := newTestUseCase(t)

	huge := `{"author":"spammer","comment":"` + strings.Repeat("x", maxLineBytes+100*1024) +
		`","published_at":"2024-05-01T08:00:00Z","video_title":"Teaser 1","sentiment":"Negative"}`
	body := `{"author":"a","comment":"flop","published_at":"2024-05-01T08:10:00Z","video_title":"Teaser 1","video_type":"Teaser","sentiment":"Negative"}` + "\n" +
		huge + "\n" +
		`{"author":"b","comment":"mass","published_at":"2024-05-01T08:20:00Z","video_title":"Teaser 1","video_type":"Teaser","sentiment":"Positive"}` + "\n" +
		`{"author":"c","comment":"boring","published_at":"2024-05-01T08:30:00Z","video_title":"Teaser 1","video_type":"Teaser","sentiment":"Negative"}`
	d.minio.put("batches", "mana/part-2.jsonl", body)

	out, err := d.uc.Process(context.Background(), model.SystemScope, report.ProcessInput{
		SourceURLs: []string{"s3://batches/mana/part-2.jsonl"},
		Subject:    subject(),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, out.TotalMentions)
	assert.Equal(t, 2, out.NegativeMentions)
	assert.Equal(t, 1, out.Skipped)
	assert.Equal(t, report.StatusCompleted, d.repo.get(out.ReportID).Status)

	var rendered intelligence.Report
	require.NoError(t, json.Unmarshal(d.cache.content[out.ReportID], &rendered))
	assert.Equal(t, 1, rendered.Diagnostics.ByReason[intelligence.SkipMalformed])
}

func TestProcess_uploadFailureFailsRun(t *testing.T) {
	d := newTestUseCase(t)
	d.minio.uploadErr = errBoom

	out, err := d.uc.Process(context.Background(), model.SystemScope, report.ProcessInput{
		SourceURLs: []string{"s3://batches/mana/part-1.jsonl"},
	})
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, report.StatusFailed, d.repo.get(out.ReportID).Status)
}

func TestResolveSources(t *testing.T) {
	d := newTestUseCase(t)
	ctx := context.Background()

	_, err := d.uc.resolveSources(ctx, nil)
	assert.ErrorIs(t, err, report.ErrSourceRequired)

	_, err = d.uc.resolveSources(ctx, []string{"https://example.com/a.jsonl"})
	assert.ErrorIs(t, err, report.ErrInvalidSourceURL)

	_, err = d.uc.resolveSources(ctx, []string{"s3://empty/"})
	assert.ErrorIs(t, err, report.ErrSourceNotFound)

	many := make([]string, report.MaxSourceURLs+1)
	for i := range many {
		many[i] = fmt.Sprintf("s3://batches/p/%03d.jsonl", i)
	}
	_, err = d.uc.resolveSources(ctx, many)
	assert.ErrorIs(t, err, report.ErrTooManySources)

	got, err := d.uc.resolveSources(ctx, []string{
		"s3://batches/z.jsonl",
		" s3://batches/mana/ ",
		"s3://batches/mana/part-1.jsonl",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"s3://batches/mana/part-1.jsonl", "s3://batches/z.jsonl"}, objectURLStrings(got))
}

func TestParamsHash_stableAcrossInputOrder(t *testing.T) {
	d := newTestUseCase(t)
	ctx := context.Background()

	a, err := d.uc.resolveSources(ctx, []string{"s3://b/2.jsonl", "s3://b/1.jsonl"})
	require.NoError(t, err)
	b, err := d.uc.resolveSources(ctx, []string{"s3://b/1.jsonl", "s3://b/2.jsonl"})
	require.NoError(t, err)

	ha, err := paramsHash(a, subject())
	require.NoError(t, err)
	hb, err := paramsHash(b, subject())
	require.NoError(t, err)
	assert.Equal(t, ha, hb)

	hc, err := paramsHash(b, intelligence.Subject{Movie: "Other"})
	require.NoError(t, err)
	assert.NotEqual(t, ha, hc)
}

func TestGenerate(t *testing.T) {
	d := newTestUseCase(t)
	ctx := context.Background()
	sc := model.Scope{UserID: "u-1"}
	input := report.GenerateInput{Title: "weekly", SourceURLs: []string{"s3://batches/mana/"}, Subject: subject()}

	out, err := d.uc.Generate(ctx, sc, input)
	require.NoError(t, err)
	assert.Equal(t, report.StatusProcessing, out.Status)

	assert.Eventually(t, func() bool {
		return d.repo.get(out.ReportID).Status == report.StatusCompleted
	}, 2*time.Second, 10*time.Millisecond)

	row := d.repo.get(out.ReportID)
	assert.Equal(t, "u-1", row.UserID)
	assert.Equal(t, model.SourceAPI, row.Source)

	again, err := d.uc.Generate(ctx, sc, input)
	require.NoError(t, err)
	assert.Equal(t, out.ReportID, again.ReportID)
	assert.Equal(t, report.StatusCompleted, again.Status)
}

func TestGenerate_lockHeld(t *testing.T) {
	d := newTestUseCase(t)
	ctx := context.Background()

	sources, err := d.uc.resolveSources(ctx, []string{"s3://batches/mana/part-1.jsonl"})
	require.NoError(t, err)
	hash, err := paramsHash(sources, subject())
	require.NoError(t, err)
	d.cache.locks[hash] = true

	_, err = d.uc.Generate(ctx, model.Scope{}, report.GenerateInput{
		SourceURLs: []string{"s3://batches/mana/part-1.jsonl"},
		Subject:    subject(),
	})
	assert.ErrorIs(t, err, report.ErrDuplicateProcessing)
}

func TestGenerate_lockErrorIsNotFatal(t *testing.T) {
	d := newTestUseCase(t)
	d.cache.lockErr = errBoom

	out, err := d.uc.Generate(context.Background(), model.Scope{}, report.GenerateInput{
		SourceURLs: []string{"s3://batches/mana/part-1.jsonl"},
	})
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		return d.repo.get(out.ReportID).Status == report.StatusCompleted
	}, 2*time.Second, 10*time.Millisecond)
}

func TestGetContent(t *testing.T) {
	d := newTestUseCase(t)
	ctx := context.Background()

	out, err := d.uc.Process(ctx, model.SystemScope, report.ProcessInput{SourceURLs: []string{"s3://batches/mana/part-1.jsonl"}})
	require.NoError(t, err)

	got, err := d.uc.GetContent(ctx, model.Scope{}, report.GetContentInput{ReportID: out.ReportID})
	require.NoError(t, err)
	assert.True(t, got.Cached)

	delete(d.cache.content, out.ReportID)
	fresh, err := d.uc.GetContent(ctx, model.Scope{}, report.GetContentInput{ReportID: out.ReportID})
	require.NoError(t, err)
	assert.False(t, fresh.Cached)
	assert.JSONEq(t, string(got.Content), string(fresh.Content))
	assert.Contains(t, d.cache.content, out.ReportID)
}

func TestGetContent_errors(t *testing.T) {
	d := newTestUseCase(t)
	ctx := context.Background()

	_, err := d.uc.GetContent(ctx, model.Scope{}, report.GetContentInput{ReportID: "nope"})
	assert.ErrorIs(t, err, report.ErrReportNotFound)

	d.repo.reports["p"] = model.Report{ID: "p", Status: report.StatusProcessing}
	_, err = d.uc.GetContent(ctx, model.Scope{}, report.GetContentInput{ReportID: "p"})
	assert.ErrorIs(t, err, report.ErrReportNotCompleted)

	d.repo.reports["lost"] = model.Report{ID: "lost", Status: report.StatusCompleted, FileURL: "s3://reports/reports/lost.json"}
	_, err = d.uc.GetContent(ctx, model.Scope{}, report.GetContentInput{ReportID: "lost"})
	assert.ErrorIs(t, err, report.ErrContentUnavailable)
}

func TestDownloadReport(t *testing.T) {
	d := newTestUseCase(t)
	ctx := context.Background()

	out, err := d.uc.Process(ctx, model.SystemScope, report.ProcessInput{
		SourceURLs: []string{"s3://batches/mana/part-1.jsonl"},
		Subject:    subject(),
	})
	require.NoError(t, err)

	dl, err := d.uc.DownloadReport(ctx, model.Scope{}, report.DownloadReportInput{ReportID: out.ReportID})
	require.NoError(t, err)
	assert.Equal(t, "intelligence_mana_katha_20240502_0000.json", dl.FileName)
	assert.True(t, strings.Contains(dl.DownloadURL, out.ReportID+".json"))
	assert.Positive(t, dl.FileSize)
}

func TestDownloadName_withoutMovie(t *testing.T) {
	assert.Equal(t, "intelligence_r1.json", downloadName(model.Report{ID: "r1", Movie: " !! "}))
}

func TestListReports(t *testing.T) {
	d := newTestUseCase(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d.repo.reports[fmt.Sprint(i)] = model.Report{ID: fmt.Sprint(i), Status: report.StatusCompleted}
		d.repo.order = append(d.repo.order, fmt.Sprint(i))
	}
	d.repo.reports["f"] = model.Report{ID: "f", Status: report.StatusFailed}
	d.repo.order = append(d.repo.order, "f")

	all, err := d.uc.ListReports(ctx, model.Scope{}, report.ListReportsInput{
		PaginateQuery: paginator.PaginateQuery{Page: -1, Limit: 1000},
	})
	require.NoError(t, err)
	assert.Equal(t, paginator.MaxLimit, all.Paginator.PerPage)
	assert.Equal(t, 1, all.Paginator.CurrentPage)
	assert.Equal(t, int64(4), all.Paginator.Total)
	assert.Len(t, all.Reports, 4)
	assert.Equal(t, "f", all.Reports[0].ID)

	completed, err := d.uc.ListReports(ctx, model.Scope{}, report.ListReportsInput{
		Status:        report.StatusCompleted,
		PaginateQuery: paginator.PaginateQuery{Page: 2, Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, completed.Reports, 1)
	assert.Equal(t, "0", completed.Reports[0].ID)
	resp := completed.Paginator.ToResponse()
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, 2, resp.TotalPages)
	assert.False(t, resp.HasNext)

	def, err := d.uc.ListReports(ctx, model.Scope{}, report.ListReportsInput{})
	require.NoError(t, err)
	assert.Equal(t, paginator.DefaultLimit, def.Paginator.PerPage)
}
