package usecase

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"intelligence-srv/internal/intelligence"
	"intelligence-srv/internal/model"
	"intelligence-srv/internal/report"
	"intelligence-srv/pkg/minio"

	"golang.org/x/sync/errgroup"
)

var batchExtensions = []string{".jsonl", ".ndjson"}

// resolveSources parses s3:// URLs and expands prefixes (a URL ending in "/")
// into the batch files below them. The result is sorted and deduplicated.
func (uc *implUseCase) resolveSources(ctx context.Context, urls []string) ([]minio.ObjectURL, error) {
	if len(urls) == 0 {
		return nil, report.ErrSourceRequired
	}

	seen := make(map[string]minio.ObjectURL)
	for _, raw := range urls {
		u, err := minio.ParseObjectURL(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", report.ErrInvalidSourceURL, raw)
		}

		if u.Object != "" && !strings.HasSuffix(u.Object, "/") {
			seen[u.String()] = u
			continue
		}

		resp, err := uc.minio.ListFiles(ctx, &minio.ListRequest{
			BucketName: u.Bucket,
			Prefix:     u.Object,
			Recursive:  true,
		})
		if err != nil {
			if minio.IsNotFound(err) {
				return nil, fmt.Errorf("%w: %s", report.ErrSourceNotFound, raw)
			}
			uc.l.Errorf(ctx, "report.usecase.resolveSources: Failed to list %s: %v", raw, err)
			return nil, report.ErrGenerationFailed
		}
		for _, f := range resp.Files {
			if isBatchFile(f.ObjectName) {
				obj := minio.ObjectURL{Bucket: u.Bucket, Object: f.ObjectName}
				seen[obj.String()] = obj
			}
		}
	}

	if len(seen) == 0 {
		return nil, report.ErrSourceNotFound
	}
	if len(seen) > report.MaxSourceURLs {
		return nil, report.ErrTooManySources
	}

	out := make([]minio.ObjectURL, 0, len(seen))
	for _, u := range seen {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out, nil
}

func isBatchFile(name string) bool {
	for _, ext := range batchExtensions {
		if strings.HasSuffix(strings.ToLower(name), ext) {
			return true
		}
	}
	return false
}

// loadSources streams every source into the session, a bounded number at a time.
// The first failing source cancels the others.
func (uc *implUseCase) loadSources(ctx context.Context, session *intelligence.Session, sources []minio.ObjectURL) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.config.LoadConcurrency)

	for _, src := range sources {
		g.Go(func() error {
			return uc.loadObject(gctx, session, src)
		})
	}
	return g.Wait()
}

// loadObject submits one record per JSONL line. Lines that do not decode are
// counted as malformed rather than failing the run.
func (uc *implUseCase) loadObject(ctx context.Context, session *intelligence.Session, src minio.ObjectURL) error {
	reader, _, err := uc.minio.DownloadFile(ctx, &minio.DownloadRequest{
		BucketName: src.Bucket,
		ObjectName: src.Object,
	})
	if err != nil {
		if minio.IsNotFound(err) {
			return fmt.Errorf("%w: %s", report.ErrSourceNotFound, src)
		}
		return fmt.Errorf("download %s: %w", src, err)
	}
	defer reader.Close()

	br := bufio.NewReaderSize(reader, 64*1024)
	lineNum, malformed := 0, 0
	for {
		line, tooLong, err := readLine(br, maxLineBytes)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read %s at line %d: %w", src, lineNum+1, err)
		}
		eof := err != nil
		if len(line) > 0 || tooLong {
			lineNum++
			ok, err := submitLine(ctx, session, line, tooLong)
			if err != nil {
				return err
			}
			if !ok {
				malformed++
			}
		}
		if eof {
			break
		}
	}

	if malformed > 0 {
		uc.l.Warnf(ctx, "report.usecase.loadObject: %s: %d of %d lines could not be decoded", src, malformed, lineNum)
	}
	return nil
}

// submitLine reports false when the line was counted as malformed.
func submitLine(ctx context.Context, session *intelligence.Session, line []byte, tooLong bool) (bool, error) {
	line = bytes.TrimSpace(line)
	if !tooLong && len(line) == 0 {
		return true, nil
	}

	var rec model.CommentRecord
	if tooLong || json.Unmarshal(line, &rec) != nil {
		return false, session.Skip(ctx, intelligence.SkipMalformed)
	}
	return true, session.Submit(ctx, rec.ToClassified())
}

// readLine returns the next line from r including its newline. A line longer
// than limit is drained and returned empty with tooLong set. At end of input
// the last line comes back together with io.EOF.
func readLine(r *bufio.Reader, limit int) ([]byte, bool, error) {
	var line []byte
	tooLong := false
	for {
		chunk, err := r.ReadSlice('\n')
		if !tooLong {
			if len(line)+len(chunk) > limit+1 {
				tooLong, line = true, nil
			} else {
				line = append(line, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return line, tooLong, err
	}
}
