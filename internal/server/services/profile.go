// Package services contains server-side business logic. This file
// implements ProfileService, which keeps a profile record and its image
// in step: create, fetch and replace-image.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/profilesync/internal/common"
	"github.com/dmitrijs2005/profilesync/internal/dbx"
	"github.com/dmitrijs2005/profilesync/internal/logging"
	"github.com/dmitrijs2005/profilesync/internal/server/assets"
	"github.com/dmitrijs2005/profilesync/internal/server/config"
	"github.com/dmitrijs2005/profilesync/internal/server/models"
	"github.com/dmitrijs2005/profilesync/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/profilesync/internal/server/upload"
	"github.com/go-playground/validator/v10"
)

// Uploader moves a payload into the asset store and returns its durable
// reference. *upload.Coordinator implements it.
type Uploader interface {
	Upload(ctx context.Context, key string, p upload.Payload, onProgress func(float64)) (string, error)
}

// ProfileService coordinates the record store and the asset store.
//
// Asset and record writes are not atomic. A create that fails after the
// upload leaves the uploaded image without a record; a replace whose
// upload fails leaves the owner without an image until it is retried.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	assets      assets.Store
	uploader    Uploader
	keys        KeyScheme
	policy      string
	notifier    Notifier
	logger      logging.Logger
	validate    *validator.Validate
}

// NewProfileService wires a ProfileService. A nil notifier is replaced by
// a LogNotifier on logger.
func NewProfileService(
	db *sql.DB,
	m repomanager.RepositoryManager,
	store assets.Store,
	uploader Uploader,
	cfg *config.Config,
	notifier Notifier,
	logger logging.Logger,
) *ProfileService {
	if notifier == nil {
		notifier = LogNotifier{Logger: logger}
	}
	return &ProfileService{
		db:          db,
		repomanager: m,
		assets:      store,
		uploader:    uploader,
		keys:        KeyScheme(cfg.AssetKeyScheme),
		policy:      cfg.ProfilePolicy,
		notifier:    notifier,
		logger:      logger,
		validate:    newValidator(),
	}
}

// CreateProfile validates fields and image, uploads the image, then stores
// the profile record pointing at it. Nothing touches the network when
// validation fails, and no record is written unless the upload succeeded.
// onProgress, if non-nil, receives the upload progress.
func (s *ProfileService) CreateProfile(
	ctx context.Context,
	ownerID, email string,
	fields models.ProfileFields,
	image *upload.Payload,
	onProgress func(float64),
) (*models.ProfileRecord, error) {
	const op = "services.profile.CreateProfile"

	log := s.logger.With("op", op, "owner_id", ownerID)

	if err := validateFields(s.validate, fields); err != nil {
		s.notifier.Failed(ctx, ownerID, EventProfileCreated, err)
		return nil, err
	}
	if image == nil || image.Body == nil {
		err := &common.ValidationError{Field: "image"}
		s.notifier.Failed(ctx, ownerID, EventProfileCreated, err)
		return nil, err
	}

	key := s.keys.CreateKey(ownerID, image.Name)
	ref, err := s.uploader.Upload(ctx, key, *image, onProgress)
	if err != nil {
		log.Error(ctx, "image upload failed", "key", key, logging.Err(err))
		s.notifier.Failed(ctx, ownerID, EventProfileCreated, err)
		return nil, err
	}

	rec := &models.ProfileRecord{
		OwnerID:       ownerID,
		ProfileFields: fields,
		Email:         email,
		ImageRef:      ref,
	}

	doc, err := s.save(ctx, rec)
	if err != nil {
		err = common.NewStorageError("insert", err)
		log.Error(ctx, "profile record not saved, image left orphaned", "key", key, logging.Err(err))
		s.notifier.Failed(ctx, ownerID, EventProfileCreated, err)
		return nil, err
	}
	rec.ID = doc.ID
	rec.CreatedAt = doc.CreatedAt

	log.Info(ctx, "profile created", "profile_id", rec.ID, "key", key)
	s.notifier.Succeeded(ctx, ownerID, EventProfileCreated)
	return rec, nil
}

// save writes rec according to the configured profile policy.
func (s *ProfileService) save(ctx context.Context, rec *models.ProfileRecord) (*models.Document, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}

	if s.policy != config.ProfilePolicyUpsert {
		return s.repomanager.Documents(s.db).Insert(ctx, common.ProfilesCollection, body)
	}

	return dbx.InTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Document, error) {
		repo := s.repomanager.Documents(tx)

		existing, err := repo.QueryEqual(ctx, common.ProfilesCollection, common.OwnerField, rec.OwnerID)
		if err != nil {
			return nil, err
		}
		if len(existing) == 0 {
			return repo.Insert(ctx, common.ProfilesCollection, body)
		}

		doc := existing[0]
		if err := repo.Update(ctx, common.ProfilesCollection, doc.ID, body); err != nil {
			return nil, err
		}
		doc.Body = body
		return doc, nil
	})
}

// FetchProfile returns the owner's current record, oldest first if several
// exist, with ImageRef freshly resolved from the owner's image key.
// common.ErrNotFound is returned when the owner has no record. Failing to
// resolve the image does not fail the read: the stored ImageRef is kept and
// the cause is reported in ProfileView.ImageErr.
func (s *ProfileService) FetchProfile(ctx context.Context, ownerID string) (*models.ProfileView, error) {
	const op = "services.profile.FetchProfile"

	log := s.logger.With("op", op, "owner_id", ownerID)

	docs, err := s.repomanager.Documents(s.db).QueryEqual(ctx, common.ProfilesCollection, common.OwnerField, ownerID)
	if err != nil {
		log.Error(ctx, "profile query failed", logging.Err(err))
		return nil, common.NewStorageError("query", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("profile of %s: %w", ownerID, common.ErrNotFound)
	}
	if len(docs) > 1 {
		log.Warn(ctx, "several profiles stored for owner, using the oldest", "count", len(docs))
	}

	rec := &models.ProfileRecord{}
	if err := json.Unmarshal(docs[0].Body, rec); err != nil {
		return nil, common.NewStorageError("decode", err)
	}
	rec.ID = docs[0].ID
	rec.CreatedAt = docs[0].CreatedAt

	view := &models.ProfileView{Profile: rec}

	ref, err := s.assets.Resolve(ctx, OwnerKey(ownerID))
	if err != nil {
		log.Warn(ctx, "profile image not resolved", logging.Err(err))
		view.ImageErr = common.NewStorageError("resolve", err)
		return view, nil
	}
	rec.ImageRef = ref

	return view, nil
}

// ReplaceImage deletes the owner's current image and uploads p in its
// place. An empty payload is rejected before anything is deleted. A failed
// delete (including a missing image) is logged and ignored. The profile record is not touched: the read path resolves the
// image by owner key, so it picks up the new object.
func (s *ProfileService) ReplaceImage(ctx context.Context, ownerID string, p upload.Payload, onProgress func(float64)) (string, error) {
	const op = "services.profile.ReplaceImage"

	key := OwnerKey(ownerID)
	log := s.logger.With("op", op, "owner_id", ownerID, "key", key)

	if p.Body == nil || p.Size <= 0 {
		err := &common.UploadError{Key: key, Cause: common.ErrInvalidPayload}
		s.notifier.Failed(ctx, ownerID, EventImageReplaced, err)
		return "", err
	}

	if err := s.assets.Delete(ctx, key); err != nil {
		log.Warn(ctx, "previous image not deleted", "kind", common.Kind(err), logging.Err(err))
	}

	ref, err := s.uploader.Upload(ctx, key, p, onProgress)
	if err != nil {
		log.Error(ctx, "image upload failed, owner has no image", logging.Err(err))
		s.notifier.Failed(ctx, ownerID, EventImageReplaced, err)
		return "", err
	}

	log.Info(ctx, "profile image replaced")
	s.notifier.Succeeded(ctx, ownerID, EventImageReplaced)
	return ref, nil
}

// Ready reports whether both stores are reachable.
func (s *ProfileService) Ready(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return common.NewStorageError("ping database", err)
	}
	if err := s.assets.Ping(ctx); err != nil {
		return common.NewStorageError("ping assets", err)
	}
	return nil
}
