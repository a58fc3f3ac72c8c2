package purchase

import (
	"context"
	"fmt"
	"time"

	"opsplatform-backend/internal/domain/access"
	"opsplatform-backend/internal/domain/files"
	"opsplatform-backend/internal/domain/fundingsource"
	"opsplatform-backend/internal/domain/listing"
	domain "opsplatform-backend/internal/domain/purchase"
	"opsplatform-backend/internal/domain/status"
	"opsplatform-backend/internal/domain/uow"
	"opsplatform-backend/internal/domain/viewmode"
	"opsplatform-backend/internal/domain/workflow"
	"opsplatform-backend/pkg/id"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Usecase struct {
	repo   domain.Repository
	events workflow.EventRepository
	uow    uow.UnitOfWork
	files  files.Store
	log    logrus.FieldLogger
	now    func() time.Time
}

// NewUsecase: files may be nil, in which case payment proofs are skipped.
func NewUsecase(repo domain.Repository, events workflow.EventRepository, tx uow.UnitOfWork, fs files.Store, log logrus.FieldLogger) *Usecase {
	return &Usecase{repo: repo, events: events, uow: tx, files: fs, log: log, now: time.Now}
}

func apply(r *domain.Request, in SaveInput) {
	if !in.Date.IsZero() {
		r.Date = in.Date.UTC()
	}
	r.ProjectID = in.ProjectID
	r.Vendor = in.Vendor
	r.Description = in.Description
	r.Type = in.Type
	r.Subcategory = in.Subcategory
	r.SetItems(in.Items)
	if in.PurchaseStage != "" {
		r.PurchaseStage = in.PurchaseStage
	}
	r.InvoiceURL = in.InvoiceURL
	r.Beneficiary = in.Beneficiary
}

func record(ctx context.Context, r uow.Repos, p *domain.Request, action workflow.Action, actor access.Actor, from status.Approval, payload any) error {
	ev := workflow.NewEvent(workflow.SubjectPurchase, p.ID, action, actor.UserID, string(from), string(p.ApprovalStatus), payload)
	return r.Events.Create(ctx, ev)
}

func (u *Usecase) Create(ctx context.Context, actor access.Actor, in SaveInput) (*RequestDTO, error) {
	date := in.Date
	if date.IsZero() {
		date = u.now()
	}
	p := domain.NewDraft(id.NewID32(), actor.UserID, date)
	apply(p, in)
	if in.Submit {
		if err := p.Submit(); err != nil {
			return nil, err
		}
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Purchases.Create(ctx, p); err != nil {
			return err
		}
		return record(ctx, r, p, workflow.ActionCreate, actor, "", nil)
	})
	if err != nil {
		return nil, err
	}
	return toDTO(p), nil
}

// Update edits a DRAFT or NEED_REVISION request of the caller.
func (u *Usecase) Update(ctx context.Context, actor access.Actor, reqID string, in SaveInput) (*RequestDTO, error) {
	var out *RequestDTO
	err := u.uow.WithinPurchaseTx(ctx, reqID, func(r uow.Repos, p *domain.Request) error {
		if p.RequesterID != actor.UserID {
			return workflow.ErrForbidden
		}
		if !p.Editable() {
			return domain.ErrNotEditable
		}
		from := p.ApprovalStatus
		apply(p, in)
		action := workflow.ActionUpdate
		if in.Submit {
			if err := p.Submit(); err != nil {
				return err
			}
			action = workflow.ActionSubmit
		}
		if err := r.Purchases.Save(ctx, p); err != nil {
			return err
		}
		out = toDTO(p)
		return record(ctx, r, p, action, actor, from, nil)
	})
	return out, err
}

// transition runs step on the locked request, saves it and appends history.
func (u *Usecase) transition(ctx context.Context, actor access.Actor, reqID string, action workflow.Action, payload any, step func(r uow.Repos, p *domain.Request) error) (*RequestDTO, error) {
	var out *RequestDTO
	err := u.uow.WithinPurchaseTx(ctx, reqID, func(r uow.Repos, p *domain.Request) error {
		from := p.ApprovalStatus
		if err := step(r, p); err != nil {
			return err
		}
		if err := r.Purchases.Save(ctx, p); err != nil {
			return err
		}
		out = toDTO(p)
		return record(ctx, r, p, action, actor, from, payload)
	})
	return out, err
}

func (u *Usecase) Submit(ctx context.Context, actor access.Actor, reqID string) (*RequestDTO, error) {
	return u.transition(ctx, actor, reqID, workflow.ActionSubmit, nil, func(_ uow.Repos, p *domain.Request) error {
		if p.RequesterID != actor.UserID {
			return workflow.ErrForbidden
		}
		return p.Submit()
	})
}

func (u *Usecase) Approve(ctx context.Context, actor access.Actor, reqID string, amount decimal.NullDecimal) (*RequestDTO, error) {
	if !actor.CanApproveExpense() {
		return nil, workflow.ErrForbidden
	}
	payload := map[string]any{}
	if amount.Valid {
		payload["approved_amount"] = amount.Decimal.String()
	}
	return u.transition(ctx, actor, reqID, workflow.ActionApprove, payload, func(_ uow.Repos, p *domain.Request) error {
		return p.Approve(amount)
	})
}

func (u *Usecase) RequestRevision(ctx context.Context, actor access.Actor, reqID, reason string) (*RequestDTO, error) {
	if !actor.CanApproveExpense() {
		return nil, workflow.ErrForbidden
	}
	return u.transition(ctx, actor, reqID, workflow.ActionRevision, map[string]string{"reason": reason}, func(_ uow.Repos, p *domain.Request) error {
		return p.RequestRevision(reason)
	})
}

func (u *Usecase) Reject(ctx context.Context, actor access.Actor, reqID, reason string) (*RequestDTO, error) {
	if !actor.CanApproveExpense() {
		return nil, workflow.ErrForbidden
	}
	return u.transition(ctx, actor, reqID, workflow.ActionReject, map[string]string{"reason": reason}, func(_ uow.Repos, p *domain.Request) error {
		return p.Reject(reason)
	})
}

func (u *Usecase) Cancel(ctx context.Context, actor access.Actor, reqID string) (*RequestDTO, error) {
	return u.transition(ctx, actor, reqID, workflow.ActionCancel, nil, func(_ uow.Repos, p *domain.Request) error {
		if p.RequesterID != actor.UserID {
			return workflow.ErrForbidden
		}
		return p.Cancel()
	})
}

// UpdateStage moves goods tracking; the requester and the finance team may do it.
func (u *Usecase) UpdateStage(ctx context.Context, actor access.Actor, reqID string, stage status.Stage) (*RequestDTO, error) {
	var out *RequestDTO
	err := u.uow.WithinPurchaseTx(ctx, reqID, func(r uow.Repos, p *domain.Request) error {
		if p.RequesterID != actor.UserID && !actor.TeamAccess {
			return workflow.ErrForbidden
		}
		prev := p.PurchaseStage
		if err := p.UpdateStage(stage); err != nil {
			return err
		}
		if err := r.Purchases.Save(ctx, p); err != nil {
			return err
		}
		out = toDTO(p)
		ev := workflow.NewEvent(workflow.SubjectPurchase, p.ID, workflow.ActionStage, actor.UserID, string(prev), string(p.PurchaseStage), nil)
		return r.Events.Create(ctx, ev)
	})
	return out, err
}

// Pay settles an approved request from a funding source. The proof upload
// happens first and is best effort; the source balance is debited by the
// effective amount in the same transaction as the status change. A proof
// stored for a payment that fails is removed again.
func (u *Usecase) Pay(ctx context.Context, actor access.Actor, reqID string, in PayInput) (*RequestDTO, error) {
	if !actor.TeamAccess {
		return nil, workflow.ErrForbidden
	}
	date := in.Date
	payment := workflow.Payment{Date: &date, SourceOfFundID: in.SourceOfFundID, Notes: in.Notes}
	if in.Date.IsZero() {
		payment.Date = nil
	}
	payment.ProofURL = u.uploadProof(ctx, reqID, in.Proof)

	out, err := u.transition(ctx, actor, reqID, workflow.ActionPay, payment, func(r uow.Repos, p *domain.Request) error {
		if err := p.MarkPaid(payment); err != nil {
			return err
		}
		src, err := r.FundingSources.GetByIDForUpdate(ctx, payment.SourceOfFundID)
		if err != nil {
			return err
		}
		if !src.Selectable() {
			return fundingsource.ErrNotSelectable
		}
		return r.FundingSources.AddBalance(ctx, src.ID, p.EffectiveAmount().Neg())
	})
	if err != nil {
		u.discardProof(ctx, reqID, payment.ProofURL)
		return nil, err
	}
	return out, nil
}

// discardProof removes a proof whose payment did not go through.
func (u *Usecase) discardProof(ctx context.Context, reqID, path string) {
	if path == "" || u.files == nil {
		return
	}
	if err := u.files.Remove(ctx, path); err != nil {
		u.log.WithError(err).WithFields(logrus.Fields{"purchase_id": reqID, "path": path}).Warn("orphan payment proof left in storage")
	}
}

func (u *Usecase) uploadProof(ctx context.Context, reqID string, a *files.Attachment) string {
	if a == nil || a.Reader == nil || u.files == nil {
		return ""
	}
	path, err := u.files.Upload(ctx, a.Reader, a.Filename, files.FolderProofs)
	if err != nil {
		u.log.WithError(err).WithField("purchase_id", reqID).Warn("payment proof upload failed, paying without proof")
		return ""
	}
	return path
}

// Delete hard-deletes a DRAFT or NEED_REVISION request of the caller.
func (u *Usecase) Delete(ctx context.Context, actor access.Actor, reqID string) error {
	return u.uow.WithinPurchaseTx(ctx, reqID, func(r uow.Repos, p *domain.Request) error {
		if p.RequesterID != actor.UserID {
			return workflow.ErrForbidden
		}
		if !p.Editable() {
			return domain.ErrNotEditable
		}
		if err := r.Purchases.Delete(ctx, p.ID); err != nil {
			return err
		}
		return record(ctx, r, p, workflow.ActionDelete, actor, p.ApprovalStatus, nil)
	})
}

func (u *Usecase) Get(ctx context.Context, actor access.Actor, reqID string) (*RequestDTO, error) {
	p, err := u.repo.GetByID(ctx, reqID)
	if err != nil {
		return nil, err
	}
	if !actor.CanSee(p.RequesterID) {
		// hide existence from other requesters
		return nil, domain.ErrNotFound
	}
	return toDTO(p), nil
}

// List returns the caller's requests in personal mode and everyone's in team
// mode. Status filters match the display status or the raw approval status.
func (u *Usecase) List(ctx context.Context, actor access.Actor, mode viewmode.Mode, q listing.Query) ([]*RequestDTO, error) {
	scope := domain.Scope{RequesterID: actor.UserID}
	if mode == viewmode.Team && actor.TeamAccess {
		scope.RequesterID = ""
	}
	all, err := u.repo.List(ctx, scope)
	if err != nil {
		return nil, err
	}
	rows := make([]*RequestDTO, len(all))
	for i := range all {
		rows[i] = toDTO(&all[i])
	}
	return listing.Apply(rows, q, func(d *RequestDTO) listing.Row {
		return listing.Row{
			Date:      d.Date,
			CreatedAt: d.CreatedAt,
			Amount:    d.EffectiveAmount,
			Status:    string(d.DisplayStatus),
			Aliases:   []string{string(d.ApprovalStatus)},
			Category:  string(d.Type),
			ProjectID: d.ProjectID,
			Text:      []string{d.Vendor, d.Description, d.ProjectID, d.Subcategory},
		}
	}), nil
}

func (u *Usecase) History(ctx context.Context, actor access.Actor, reqID string) ([]workflow.Event, error) {
	if _, err := u.Get(ctx, actor, reqID); err != nil {
		return nil, err
	}
	out, err := u.events.ListBySubject(ctx, workflow.SubjectPurchase, reqID)
	if err != nil {
		return nil, fmt.Errorf("load purchase history: %w", err)
	}
	return out, nil
}
