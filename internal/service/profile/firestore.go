package profile

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	profilesCollection  = "profiles"
	languagesCollection = "targetLanguages"
	languageField       = "language"
)

// FirestoreStore implements Service on Cloud Firestore. A profile is one
// document in "profiles" keyed by user ID; its target languages live in a
// "targetLanguages" subcollection, one document per language. The two are
// not written transactionally: create compensates by deleting the profile
// document when the language write fails, and a crash between the two
// steps can leave a profile with no language documents.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a Firestore-backed profile store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) doc(userID string) *firestore.DocumentRef {
	return s.client.Collection(profilesCollection).Doc(userID)
}

func (s *FirestoreStore) Create(ctx context.Context, userID string, params CreateParams) (*Profile, error) {
	userID = strings.TrimSpace(userID)
	doc := s.doc(userID)

	// Advisory pre-check for a friendlier conflict error. The Create
	// precondition below is the authoritative uniqueness guard.
	snap, err := doc.Get(ctx)
	if err == nil && snap.Exists() {
		return nil, ErrAlreadyExists
	}
	if err != nil && status.Code(err) != codes.NotFound {
		return nil, fmt.Errorf("profile existence check: %w", err)
	}

	now := time.Now().UTC()
	if _, err := doc.Create(ctx, map[string]any{
		"email":               strings.TrimSpace(params.Email),
		"first_name":          strings.TrimSpace(params.FirstName),
		"last_name":           strings.TrimSpace(params.LastName),
		"level":               string(params.Level),
		"native_language":     strings.TrimSpace(params.NativeLanguage),
		"bio":                 params.Bio,
		"profile_picture_url": nil,
		"created_at":          now,
		"updated_at":          now,
	}); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}

	if err := s.writeLanguages(ctx, doc, params.TargetLanguages); err != nil {
		// Best-effort compensation; the delete itself is unchecked.
		_, _ = doc.Delete(ctx)
		return nil, fmt.Errorf("create target languages: %w", err)
	}

	return s.Get(ctx, userID)
}

func (s *FirestoreStore) Get(ctx context.Context, userID string) (*Profile, error) {
	doc := s.doc(userID)

	snap, err := doc.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	languages, err := s.readLanguages(ctx, doc)
	if err != nil {
		return nil, err
	}

	return Coerce(userID, snap.Data(), languages), nil
}

func (s *FirestoreStore) Update(ctx context.Context, userID string, params UpdateParams) (*Profile, error) {
	doc := s.doc(userID)

	// updated_at is always stamped, even when only the language set changes.
	updates := []firestore.Update{
		{Path: "updated_at", Value: time.Now().UTC()},
	}
	if params.Email != nil {
		updates = append(updates, firestore.Update{Path: "email", Value: strings.TrimSpace(*params.Email)})
	}
	if params.FirstName != nil {
		updates = append(updates, firestore.Update{Path: "first_name", Value: strings.TrimSpace(*params.FirstName)})
	}
	if params.LastName != nil {
		updates = append(updates, firestore.Update{Path: "last_name", Value: strings.TrimSpace(*params.LastName)})
	}
	if params.Level != nil {
		updates = append(updates, firestore.Update{Path: "level", Value: string(*params.Level)})
	}
	if params.NativeLanguage != nil {
		updates = append(updates, firestore.Update{Path: "native_language", Value: strings.TrimSpace(*params.NativeLanguage)})
	}
	if params.Bio != nil {
		updates = append(updates, firestore.Update{Path: "bio", Value: *params.Bio})
	}
	if params.ClearPicture {
		updates = append(updates, firestore.Update{Path: "profile_picture_url", Value: nil})
	} else if params.PictureURL != nil {
		updates = append(updates, firestore.Update{Path: "profile_picture_url", Value: strings.TrimSpace(*params.PictureURL)})
	}

	if _, err := doc.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if params.TargetLanguages != nil {
		if err := s.replaceLanguages(ctx, doc, params.TargetLanguages); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, userID)
}

func (s *FirestoreStore) Delete(ctx context.Context, userID string) error {
	doc := s.doc(userID)

	snap, err := doc.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("get profile: %w", err)
	}
	if !snap.Exists() {
		return ErrNotFound
	}

	// Firestore does not cascade deletes to subcollections, so the
	// language documents go in the same batch as the profile.
	refs, err := doc.Collection(languagesCollection).DocumentRefs(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("list target languages: %w", err)
	}
	batch := s.client.Batch()
	for _, ref := range refs {
		batch.Delete(ref)
	}
	batch.Delete(doc)
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

func (s *FirestoreStore) List(ctx context.Context) ([]*Profile, error) {
	snaps, err := s.client.Collection(profilesCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	profiles := make([]*Profile, 0, len(snaps))
	for _, snap := range snaps {
		languages, err := s.readLanguages(ctx, snap.Ref)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, Coerce(snap.Ref.ID, snap.Data(), languages))
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].UserID < profiles[j].UserID
	})
	return profiles, nil
}

// writeLanguages creates one language document per entry in a single batch.
// Duplicates are written as-is; de-duplication is the caller's concern.
func (s *FirestoreStore) writeLanguages(ctx context.Context, doc *firestore.DocumentRef, languages []string) error {
	if len(languages) == 0 {
		return nil
	}
	batch := s.client.Batch()
	for _, lang := range languages {
		ref := doc.Collection(languagesCollection).NewDoc()
		batch.Create(ref, map[string]any{languageField: strings.TrimSpace(lang)})
	}
	_, err := batch.Commit(ctx)
	return err
}

// replaceLanguages deletes the whole language set and rewrites it in one
// batch. Whole-set replacement is last-writer-wins under concurrent
// updates; the batch only prevents a torn intermediate state.
func (s *FirestoreStore) replaceLanguages(ctx context.Context, doc *firestore.DocumentRef, languages []string) error {
	refs, err := doc.Collection(languagesCollection).DocumentRefs(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("list target languages: %w", err)
	}
	if len(refs) == 0 && len(languages) == 0 {
		return nil
	}
	batch := s.client.Batch()
	for _, ref := range refs {
		batch.Delete(ref)
	}
	for _, lang := range languages {
		ref := doc.Collection(languagesCollection).NewDoc()
		batch.Create(ref, map[string]any{languageField: strings.TrimSpace(lang)})
	}
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("replace target languages: %w", err)
	}
	return nil
}

func (s *FirestoreStore) readLanguages(ctx context.Context, doc *firestore.DocumentRef) ([]string, error) {
	snaps, err := doc.Collection(languagesCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("get target languages: %w", err)
	}
	languages := make([]string, 0, len(snaps))
	for _, snap := range snaps {
		if lang, ok := snap.Data()[languageField].(string); ok && lang != "" {
			languages = append(languages, lang)
		}
	}
	sort.Strings(languages)
	return languages, nil
}

var _ Service = (*FirestoreStore)(nil)
