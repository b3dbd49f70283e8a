package job_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sniperz/shorts-downloader/internal/backend"
	"github.com/sniperz/shorts-downloader/internal/event"
	"github.com/sniperz/shorts-downloader/internal/job"
	"github.com/sniperz/shorts-downloader/internal/model"
	"github.com/sniperz/shorts-downloader/internal/store"
)

func TestFetch_DeliversArtifact(t *testing.T) {
	t.Parallel()
	artifact := []byte("jpeg bytes")
	fb := &fakeBackend{
		fetchBytes: func(_ context.Context, url string, _ time.Duration) ([]byte, error) {
			require.Equal(t, "https://img.youtube.com/vi/abc/hqdefault.jpg", url)
			return artifact, nil
		},
	}
	sup, st := newSupervisor(fb)
	rec := record(sup)
	item := st.Append("Clip", "https://www.youtube.com/shorts/abc",
		"https://img.youtube.com/vi/abc/hqdefault.jpg")

	_, err := sup.StartFetch(t.Context(), item.ID)
	require.NoError(t, err)
	rec.waitForFinished(t, model.JobFetch, 1)
	require.NoError(t, sup.Quiesce(context.Background()))

	events := rec.wait(t)
	ready := ofKind(events, event.KindAuxiliaryReady)
	require.Len(t, ready, 1)
	require.Equal(t, item.ID, ready[0].ItemID)
	require.Equal(t, artifact, ready[0].Artifact)
	require.False(t, ready[0].Fallback)

	finished := ofKind(events, event.KindJobFinished)
	require.Len(t, finished, 1)
	require.Equal(t, model.JobFetch, finished[0].Job)
	require.Equal(t, item.ID, finished[0].ItemID)

	got, ok := st.Get(item.ID)
	require.True(t, ok)
	require.True(t, got.ThumbLoaded)
}

func TestFetch_FallbackOnError(t *testing.T) {
	t.Parallel()
	fb := &fakeBackend{
		fetchBytes: func(_ context.Context, _ string, _ time.Duration) ([]byte, error) {
			return nil, errors.New("host unreachable")
		},
	}
	sup, st := newSupervisor(fb)
	rec := record(sup)
	item := st.Append("Clip", "https://www.youtube.com/shorts/abc",
		"https://img.youtube.com/vi/abc/hqdefault.jpg")

	_, err := sup.StartFetch(t.Context(), item.ID)
	require.NoError(t, err)
	require.NoError(t, sup.Quiesce(context.Background()))

	events := rec.wait(t)
	ready := ofKind(events, event.KindAuxiliaryReady)
	require.Len(t, ready, 1)
	require.True(t, ready[0].Fallback)
	require.Equal(t, backend.FallbackThumbnail, ready[0].Artifact)

	// Even a degraded fetch ends in JobFinished, never JobFailed.
	require.Empty(t, ofKind(events, event.KindJobFailed))
	require.Len(t, ofKind(events, event.KindJobFinished), 1)

	got, ok := st.Get(item.ID)
	require.True(t, ok)
	require.False(t, got.ThumbLoaded)
}

func TestFetch_FallbackOnEmptyURL(t *testing.T) {
	t.Parallel()
	fb := &fakeBackend{
		fetchBytes: func(_ context.Context, _ string, _ time.Duration) ([]byte, error) {
			t.Error("no network call expected for an empty artifact URL")
			return nil, nil
		},
	}
	sup, st := newSupervisor(fb)
	rec := record(sup)
	item := st.Append("Clip", "https://www.youtube.com/shorts/abc", "")

	_, err := sup.StartFetch(t.Context(), item.ID)
	require.NoError(t, err)
	require.NoError(t, sup.Quiesce(context.Background()))

	events := rec.wait(t)
	ready := ofKind(events, event.KindAuxiliaryReady)
	require.Len(t, ready, 1)
	require.True(t, ready[0].Fallback)
}

func TestFetch_UnknownItem(t *testing.T) {
	t.Parallel()
	sup, _ := newSupervisor(&fakeBackend{})
	rec := record(sup)

	_, err := sup.StartFetch(t.Context(), 42)
	require.ErrorIs(t, err, job.ErrUnknownItem)

	require.NoError(t, sup.Quiesce(context.Background()))
	require.Empty(t, rec.wait(t))
}

func TestFetch_RejectsDuplicate(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	fb := &fakeBackend{
		fetchBytes: func(_ context.Context, _ string, _ time.Duration) ([]byte, error) {
			<-release
			return backend.FallbackThumbnail, nil
		},
	}
	sup, st := newSupervisor(fb)
	rec := record(sup)
	item := st.Append("Clip", "https://www.youtube.com/shorts/abc",
		"https://img.youtube.com/vi/abc/hqdefault.jpg")

	_, err := sup.StartFetch(t.Context(), item.ID)
	require.NoError(t, err)

	_, err = sup.StartFetch(t.Context(), item.ID)
	require.ErrorIs(t, err, job.ErrAlreadyActive)

	close(release)
	require.NoError(t, sup.Quiesce(context.Background()))
	rec.wait(t)
}

func TestFetch_CancelQueuedSkipsNetwork(t *testing.T) {
	t.Parallel()
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	fb := &fakeBackend{
		fetchBytes: func(_ context.Context, _ string, _ time.Duration) ([]byte, error) {
			if calls.Add(1) == 1 {
				close(started)
			}
			<-release
			return []byte("real"), nil
		},
	}
	st := store.New()
	st.Append("First", "https://www.youtube.com/shorts/one",
		"https://img.youtube.com/vi/one/hqdefault.jpg")
	st.Append("Second", "https://www.youtube.com/shorts/two",
		"https://img.youtube.com/vi/two/hqdefault.jpg")

	// A single-worker pool keeps the second fetch queued behind the first.
	sup := job.New(fb, st, job.Options{FetchWorkers: 1, FetchTimeout: time.Second})
	rec := record(sup)

	_, err := sup.StartFetch(t.Context(), 0)
	require.NoError(t, err)
	<-started
	_, err = sup.StartFetch(t.Context(), 1)
	require.NoError(t, err)

	require.NoError(t, sup.CancelFetch(1))
	close(release)

	require.NoError(t, sup.Quiesce(context.Background()))
	events := rec.wait(t)

	require.Equal(t, int32(1), calls.Load(),
		"a canceled queued fetch must not reach the network")
	ready := ofKind(events, event.KindAuxiliaryReady)
	require.Len(t, ready, 2, "every fetch delivers an artifact, fallback included")
	require.Len(t, ofKind(events, event.KindJobFinished), 2)
}

func TestFetch_CancelNotActive(t *testing.T) {
	t.Parallel()
	sup, st := newSupervisor(&fakeBackend{})
	rec := record(sup)
	st.Append("Clip", "https://www.youtube.com/shorts/abc", "")

	require.ErrorIs(t, sup.CancelFetch(0), job.ErrNotActive)

	require.NoError(t, sup.Quiesce(context.Background()))
	rec.wait(t)
}
