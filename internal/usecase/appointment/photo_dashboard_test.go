package appointment_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-backoffice/internal/audit"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
	usecase "github.com/BruksfildServices01/salon-backoffice/internal/usecase/appointment"
)

type fakeObjects struct {
	keys []string
}

func (f *fakeObjects) PutObject(_ context.Context, key string, body []byte, contentType string) (string, error) {
	f.keys = append(f.keys, key)
	return "https://cdn.test/" + key, nil
}

func pngBytes(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func TestUploadPhotoStoresWebPAndInsertsRow(t *testing.T) {
	f := newFixture(t)
	ap := f.appointment(t, f.stylistID, time.Now())
	objects := &fakeObjects{}
	uc := usecase.NewUploadPhoto(f.store, objects, 32, nil)

	photo, err := uc.Execute(context.Background(), audit.Actor{}, ap.ID, models.PhotoBefore, pngBytes(t, 64, 64))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(objects.keys) != 1 {
		t.Fatalf("expected one stored object, got %v", objects.keys)
	}
	key := objects.keys[0]
	if !strings.HasPrefix(key, "appointments/"+ap.ID+"/") || !strings.HasSuffix(key, ".webp") {
		t.Fatalf("unexpected key %q", key)
	}

	photos, _ := f.store.ListPhotos(context.Background(), ap.ID)
	if len(photos) != 1 || photos[0].PhotoURL != photo.PhotoURL || photos[0].PhotoType != models.PhotoBefore {
		t.Fatalf("unexpected photo rows %+v", photos)
	}
}

func TestUploadPhotoValidatesBeforeStoring(t *testing.T) {
	f := newFixture(t)
	ap := f.appointment(t, f.stylistID, time.Now())
	objects := &fakeObjects{}
	uc := usecase.NewUploadPhoto(f.store, objects, 32, nil)
	ctx := context.Background()

	if _, err := uc.Execute(ctx, audit.Actor{}, ap.ID, "during", pngBytes(t, 4, 4)); !httperr.IsValidation(err) {
		t.Fatalf("expected ValidationError for photo type, got %v", err)
	}
	if _, err := uc.Execute(ctx, audit.Actor{}, ap.ID, models.PhotoAfter, strings.NewReader("nope")); !httperr.IsValidation(err) {
		t.Fatalf("expected ValidationError for payload, got %v", err)
	}
	if _, err := uc.Execute(ctx, audit.Actor{}, "missing", models.PhotoAfter, pngBytes(t, 4, 4)); !httperr.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if len(objects.keys) != 0 {
		t.Fatalf("nothing should have been stored: %v", objects.keys)
	}
}

func TestUploadPhotoWithoutStorage(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewUploadPhoto(f.store, nil, 32, nil)

	_, err := uc.Execute(context.Background(), audit.Actor{}, "any", models.PhotoAfter, pngBytes(t, 4, 4))
	if !httperr.IsBusiness(err, "photo_storage_disabled") {
		t.Fatalf("expected photo_storage_disabled, got %v", err)
	}
}

func TestListRecentClients(t *testing.T) {
	f := newFixture(t)
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		stylist := f.stylistID
		if i == 6 {
			stylist = ""
		}
		f.appointment(t, stylist, base.AddDate(0, 0, i))
	}

	uc := usecase.NewListRecentClients(f.store, f.store, newAggregator(f.store, f.store), zap.NewNop())
	got, err := uc.Execute(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != usecase.RecentClientsLimit {
		t.Fatalf("got %d rows, want %d", len(got), usecase.RecentClientsLimit)
	}
	if got[0].StylistName != "unassigned" || got[1].StylistName != "Lena" {
		t.Fatalf("stylist names: %q, %q", got[0].StylistName, got[1].StylistName)
	}
	if got[0].ClientName != "Ada Lovelace" {
		t.Fatalf("client name = %q", got[0].ClientName)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Date.After(got[i-1].Date) {
			t.Fatalf("not ordered by date desc at %d", i)
		}
	}
}

func TestListRecentClientsScopedToVenues(t *testing.T) {
	f := newFixture(t)
	f.appointment(t, f.stylistID, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))

	uc := usecase.NewListRecentClients(f.store, f.store, newAggregator(f.store, f.store), zap.NewNop())
	ctx := context.Background()

	got, err := uc.Execute(ctx, []string{f.venueID})
	if err != nil || len(got) != 1 {
		t.Fatalf("own venue: got %d rows, err %v", len(got), err)
	}

	for _, scope := range [][]string{{"another-venue"}, {}} {
		got, err := uc.Execute(ctx, scope)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 0 {
			t.Fatalf("scope %v leaked %d rows", scope, len(got))
		}
	}
}
