package service

import (
	"context"
	"strconv"
	"strings"

	"ai-studybuddy-be/internal/apperr"
	"ai-studybuddy-be/internal/entity"
	"ai-studybuddy-be/internal/pkg/logger"
	"ai-studybuddy-be/internal/repository/contract"
	"ai-studybuddy-be/internal/repository/memory"
	"ai-studybuddy-be/internal/repository/specification"
	"ai-studybuddy-be/pkg/remotestore"
	"ai-studybuddy-be/pkg/store"
)

const (
	StorageRemote = "remote"
	StorageLocal  = "local"
)

// RemoteStore is the remote persistence collaborator. Satisfied by
// remotestore.Client.
type RemoteStore interface {
	CreateSet(ctx context.Context, payload *remotestore.SetPayload) (string, error)
	ListSets(ctx context.Context, identity string, includeLocked bool) ([]remotestore.SetSummary, error)
	GetSet(ctx context.Context, id, identity string) (*remotestore.SetPayload, error)
	DeleteSet(ctx context.Context, id, identity string) error
}

type ICardSetService interface {
	// Save persists the caller's active session as a named set. The remote
	// store is tried first; on any remote failure the set is written to the
	// local store instead, and the response says which store holds it.
	Save(ctx context.Context, identity, title string) (*entity.CardSet, error)
	// List returns metadata-only summaries, never card bodies.
	List(ctx context.Context, identity string) ([]*entity.CardSetSummary, string, error)
	// Load replaces the active session with the referenced set. The ref is
	// a remote set id when the set lives remotely, or a title for sets the
	// degraded save path wrote locally. Access denial surfaces as-is; only
	// not-found and unreachable fall through to the local store.
	Load(ctx context.Context, identity, ref string) (*store.Session, error)
	Delete(ctx context.Context, identity, ref string, confirmed bool) error
}

type cardSetService struct {
	remote      RemoteStore
	localRepo   contract.CardSetRepository
	sessions    *memory.SessionRepository
	entitlement IEntitlementService
	logger      logger.ILogger
}

func NewCardSetService(
	remote RemoteStore,
	localRepo contract.CardSetRepository,
	sessions *memory.SessionRepository,
	entitlement IEntitlementService,
	sysLogger logger.ILogger,
) ICardSetService {
	return &cardSetService{
		remote:      remote,
		localRepo:   localRepo,
		sessions:    sessions,
		entitlement: entitlement,
		logger:      sysLogger,
	}
}

func (s *cardSetService) Save(ctx context.Context, identity, title string) (*entity.CardSet, error) {
	if identity == "" {
		return nil, apperr.New(apperr.KindMissingIdentity, "identity is required to save a set")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperr.New(apperr.KindValidation, "title is required")
	}

	session, ok := s.sessions.Get(identity)
	if !ok || len(session.Flashcards) == 0 {
		return nil, apperr.New(apperr.KindValidation, "no flashcards to save, generate a set first")
	}

	ent := s.entitlement.ResolveTier(ctx, identity)
	summaries, _, err := s.List(ctx, identity)
	if err != nil {
		return nil, err
	}
	if err := s.entitlement.CheckSaveAllowed(len(summaries), ent); err != nil {
		return nil, err
	}

	set := setFromSession(identity, title, session)

	id, remoteErr := s.remote.CreateSet(ctx, toSetPayload(set))
	if remoteErr == nil {
		set.Id = id
		set.StoredLocally = false
		s.logger.Info("cardset", "Saved set to remote store", map[string]interface{}{
			"identity": identity,
			"title":    title,
			"set_id":   id,
		})
		return set, nil
	}

	s.logger.Warn("cardset", "Remote save failed, falling back to local store", map[string]interface{}{
		"identity": identity,
		"title":    title,
		"error":    remoteErr.Error(),
	})

	dupes, err := s.localRepo.Count(ctx,
		specification.ByIdentity{Identity: identity}, specification.ByTitle{Title: title})
	if err != nil {
		return nil, err
	}
	if dupes > 0 {
		return nil, apperr.Newf(apperr.KindValidation, "a set titled %q already exists", title)
	}

	if err := s.localRepo.Create(ctx, set); err != nil {
		return nil, err
	}
	set.StoredLocally = true
	return set, nil
}

func (s *cardSetService) List(ctx context.Context, identity string) ([]*entity.CardSetSummary, string, error) {
	ent := s.entitlement.ResolveTier(ctx, identity)

	remote, remoteErr := s.remote.ListSets(ctx, identity, true)
	if remoteErr == nil {
		summaries := make([]*entity.CardSetSummary, len(remote))
		for i, r := range remote {
			tier := entity.Tier(r.TierRequired)
			summaries[i] = &entity.CardSetSummary{
				Id:           r.Id,
				Title:        r.Title,
				TotalCards:   r.TotalCards,
				TierRequired: tier,
				CreatedAt:    r.CreatedAt,
				// A set is locked when the remote says so or when it
				// requires a tier the caller does not hold.
				IsLocked:      r.IsLocked || (tier == entity.TierPremium && ent.Tier == entity.TierFree),
				StoredLocally: false,
			}
		}
		return summaries, StorageRemote, nil
	}

	s.logger.Warn("cardset", "Remote list failed, falling back to local store", map[string]interface{}{
		"identity": identity,
		"error":    remoteErr.Error(),
	})

	local, err := s.localRepo.FindAllSummaries(ctx,
		specification.ByIdentity{Identity: identity},
		specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, "", err
	}
	return local, StorageLocal, nil
}

func (s *cardSetService) Load(ctx context.Context, identity, ref string) (*store.Session, error) {
	payload, remoteErr := s.remote.GetSet(ctx, ref, identity)
	if remoteErr == nil {
		return s.replaceSession(identity, setFromPayload(payload)), nil
	}

	// Denial is an answer, not an outage. The set exists remotely and the
	// caller's tier does not unlock it, so the local store has no say.
	if apperr.IsKind(remoteErr, apperr.KindAccessDenied) {
		return nil, remoteErr
	}

	local, err := s.localRepo.FindOne(ctx,
		specification.ByIdentity{Identity: identity}, specification.ByTitle{Title: ref})
	if err != nil {
		return nil, err
	}
	if local == nil {
		return nil, remoteErr
	}

	s.logger.Info("cardset", "Loaded set from local store", map[string]interface{}{
		"identity": identity,
		"title":    ref,
	})
	return s.replaceSession(identity, local), nil
}

func (s *cardSetService) Delete(ctx context.Context, identity, ref string, confirmed bool) error {
	if !confirmed {
		return apperr.New(apperr.KindValidation, "deletion requires explicit confirmation")
	}

	remoteErr := s.remote.DeleteSet(ctx, ref, identity)
	if remoteErr == nil {
		s.logger.Info("cardset", "Deleted set from remote store", map[string]interface{}{
			"identity": identity,
			"set_id":   ref,
		})
		return nil
	}
	if apperr.IsKind(remoteErr, apperr.KindAccessDenied) {
		return remoteErr
	}

	rows, err := s.localRepo.DeleteByTitle(ctx, identity, ref)
	if err != nil {
		return err
	}
	if rows == 0 {
		return remoteErr
	}

	s.logger.Info("cardset", "Deleted set from local store", map[string]interface{}{
		"identity": identity,
		"title":    ref,
	})
	return nil
}

// replaceSession swaps the active session for the loaded set. Review
// position and flip state start fresh, saved card statuses carry over, and
// the lifetime generation counter is untouched since loading produced no
// new cards.
func (s *cardSetService) replaceSession(identity string, set *entity.CardSet) *store.Session {
	prevTotal := s.sessions.TotalGenerated(identity)

	cards := make([]entity.Flashcard, len(set.Flashcards))
	copy(cards, set.Flashcards)
	for i := range cards {
		cards[i].IsFlipped = false
	}

	session := store.NewSession(identity, cards, 0, set.OriginalText)
	session.TotalGenerated = prevTotal
	for id, status := range set.CardStatuses {
		session.CardStatuses[id] = status
	}
	s.sessions.Save(session)
	return session
}

func setFromSession(identity, title string, session *store.Session) *entity.CardSet {
	statuses := make(map[int]entity.CardStatus, len(session.CardStatuses))
	for id, status := range session.CardStatuses {
		statuses[id] = status
	}
	return &entity.CardSet{
		Identity:     identity,
		Title:        title,
		OriginalText: session.SourceText,
		Flashcards:   session.Flashcards,
		CardStatuses: statuses,
		TotalCards:   len(session.Flashcards),
		TierRequired: entity.TierFree,
		CreatedAt:    session.GeneratedAt,
	}
}

func toSetPayload(set *entity.CardSet) *remotestore.SetPayload {
	cards := make([]remotestore.CardPayload, len(set.Flashcards))
	for i, c := range set.Flashcards {
		cards[i] = remotestore.CardPayload{
			Id:         c.Id,
			Question:   c.Question,
			Answer:     c.Answer,
			Difficulty: string(c.Difficulty),
			Type:       string(c.Type),
		}
	}
	statuses := make(map[string]string, len(set.CardStatuses))
	for id, status := range set.CardStatuses {
		statuses[strconv.Itoa(id)] = string(status)
	}
	return &remotestore.SetPayload{
		Identity:     set.Identity,
		Title:        set.Title,
		OriginalText: set.OriginalText,
		Flashcards:   cards,
		CardStatuses: statuses,
		TotalCards:   set.TotalCards,
		TierRequired: string(set.TierRequired),
		CreatedAt:    set.CreatedAt,
	}
}

func setFromPayload(p *remotestore.SetPayload) *entity.CardSet {
	cards := make([]entity.Flashcard, len(p.Flashcards))
	for i, c := range p.Flashcards {
		cards[i] = entity.Flashcard{
			Id:         c.Id,
			Question:   c.Question,
			Answer:     c.Answer,
			Difficulty: entity.Difficulty(c.Difficulty),
			Type:       entity.CardType(c.Type),
		}
	}
	statuses := make(map[int]entity.CardStatus, len(p.CardStatuses))
	for key, status := range p.CardStatuses {
		if id, err := strconv.Atoi(key); err == nil {
			statuses[id] = entity.CardStatus(status)
		}
	}
	return &entity.CardSet{
		Id:           p.Id,
		Identity:     p.Identity,
		Title:        p.Title,
		OriginalText: p.OriginalText,
		Flashcards:   cards,
		CardStatuses: statuses,
		TotalCards:   p.TotalCards,
		TierRequired: entity.Tier(p.TierRequired),
		CreatedAt:    p.CreatedAt,
	}
}
