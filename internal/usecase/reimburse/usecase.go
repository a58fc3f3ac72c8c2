package reimburse

import (
	"context"
	"fmt"
	"time"

	"opsplatform-backend/internal/domain/access"
	"opsplatform-backend/internal/domain/files"
	"opsplatform-backend/internal/domain/fundingsource"
	"opsplatform-backend/internal/domain/listing"
	domain "opsplatform-backend/internal/domain/reimburse"
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

func NewUsecase(repo domain.Repository, events workflow.EventRepository, tx uow.UnitOfWork, fs files.Store, log logrus.FieldLogger) *Usecase {
	return &Usecase{repo: repo, events: events, uow: tx, files: fs, log: log, now: time.Now}
}

func apply(r *domain.Request, in SaveInput) {
	if !in.Date.IsZero() {
		r.Date = in.Date.UTC()
	}
	r.ProjectID = in.ProjectID
	r.Category = in.Category
	r.Subcategory = in.Subcategory
	r.Description = in.Description
	r.SetItems(in.Items)
	r.SetTrip(in.Trip)
	r.InvoiceURL = in.InvoiceURL
	r.Beneficiary = in.Beneficiary
}

func record(ctx context.Context, r uow.Repos, rr *domain.Request, action workflow.Action, actor access.Actor, from status.Reimburse, payload any) error {
	ev := workflow.NewEvent(workflow.SubjectReimburse, rr.ID, action, actor.UserID, string(from), string(rr.Status), payload)
	return r.Events.Create(ctx, ev)
}

func (u *Usecase) Create(ctx context.Context, actor access.Actor, in SaveInput) (*RequestDTO, error) {
	date := in.Date
	if date.IsZero() {
		date = u.now()
	}
	rr := domain.NewDraft(id.NewID32(), actor.UserID, date)
	apply(rr, in)
	if in.Submit {
		if err := rr.Submit(); err != nil {
			return nil, err
		}
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Reimburses.Create(ctx, rr); err != nil {
			return err
		}
		return record(ctx, r, rr, workflow.ActionCreate, actor, "", nil)
	})
	if err != nil {
		return nil, err
	}
	return toDTO(rr), nil
}

// Update edits a DRAFT or PENDING claim of the caller. A pending claim is
// re-checked against the submit guard.
func (u *Usecase) Update(ctx context.Context, actor access.Actor, reqID string, in SaveInput) (*RequestDTO, error) {
	var out *RequestDTO
	err := u.uow.WithinReimburseTx(ctx, reqID, func(r uow.Repos, rr *domain.Request) error {
		if rr.RequesterID != actor.UserID {
			return workflow.ErrForbidden
		}
		if !rr.Editable() {
			return domain.ErrNotEditable
		}
		from := rr.Status
		apply(rr, in)
		action := workflow.ActionUpdate
		switch {
		case rr.Status == status.ReimbursePending:
			if err := workflow.Check(rr.SubmitViolations()); err != nil {
				return err
			}
		case in.Submit:
			if err := rr.Submit(); err != nil {
				return err
			}
			action = workflow.ActionSubmit
		}
		if err := r.Reimburses.Save(ctx, rr); err != nil {
			return err
		}
		out = toDTO(rr)
		return record(ctx, r, rr, action, actor, from, nil)
	})
	return out, err
}

func (u *Usecase) transition(ctx context.Context, actor access.Actor, reqID string, action workflow.Action, payload any, step func(r uow.Repos, rr *domain.Request) error) (*RequestDTO, error) {
	var out *RequestDTO
	err := u.uow.WithinReimburseTx(ctx, reqID, func(r uow.Repos, rr *domain.Request) error {
		from := rr.Status
		if err := step(r, rr); err != nil {
			return err
		}
		if err := r.Reimburses.Save(ctx, rr); err != nil {
			return err
		}
		out = toDTO(rr)
		return record(ctx, r, rr, action, actor, from, payload)
	})
	return out, err
}

func (u *Usecase) Submit(ctx context.Context, actor access.Actor, reqID string) (*RequestDTO, error) {
	return u.transition(ctx, actor, reqID, workflow.ActionSubmit, nil, func(_ uow.Repos, rr *domain.Request) error {
		if rr.RequesterID != actor.UserID {
			return workflow.ErrForbidden
		}
		return rr.Submit()
	})
}

func (u *Usecase) Approve(ctx context.Context, actor access.Actor, reqID string, amount decimal.Decimal) (*RequestDTO, error) {
	if !actor.CanApproveExpense() {
		return nil, workflow.ErrForbidden
	}
	payload := map[string]string{"approved_amount": amount.String()}
	return u.transition(ctx, actor, reqID, workflow.ActionApprove, payload, func(_ uow.Repos, rr *domain.Request) error {
		return rr.Approve(amount)
	})
}

func (u *Usecase) Reject(ctx context.Context, actor access.Actor, reqID, reason string) (*RequestDTO, error) {
	if !actor.CanApproveExpense() {
		return nil, workflow.ErrForbidden
	}
	return u.transition(ctx, actor, reqID, workflow.ActionReject, map[string]string{"reason": reason}, func(_ uow.Repos, rr *domain.Request) error {
		return rr.Reject(reason)
	})
}

// Pay mirrors purchasing: best-effort proof, then status and balance in one
// transaction. The approved amount is what leaves the source.
func (u *Usecase) Pay(ctx context.Context, actor access.Actor, reqID string, in PayInput) (*RequestDTO, error) {
	if !actor.TeamAccess {
		return nil, workflow.ErrForbidden
	}
	payment := workflow.Payment{SourceOfFundID: in.SourceOfFundID, Notes: in.Notes}
	if !in.Date.IsZero() {
		d := in.Date
		payment.Date = &d
	}
	payment.ProofURL = u.uploadProof(ctx, reqID, in.Proof)

	out, err := u.transition(ctx, actor, reqID, workflow.ActionPay, payment, func(r uow.Repos, rr *domain.Request) error {
		if err := rr.Pay(payment); err != nil {
			return err
		}
		src, err := r.FundingSources.GetByIDForUpdate(ctx, payment.SourceOfFundID)
		if err != nil {
			return err
		}
		if !src.Selectable() {
			return fundingsource.ErrNotSelectable
		}
		return r.FundingSources.AddBalance(ctx, src.ID, rr.EffectiveAmount().Neg())
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
		u.log.WithError(err).WithFields(logrus.Fields{"reimburse_id": reqID, "path": path}).Warn("orphan payment proof left in storage")
	}
}

func (u *Usecase) uploadProof(ctx context.Context, reqID string, a *files.Attachment) string {
	if a == nil || a.Reader == nil || u.files == nil {
		return ""
	}
	path, err := u.files.Upload(ctx, a.Reader, a.Filename, files.FolderProofs)
	if err != nil {
		u.log.WithError(err).WithField("reimburse_id", reqID).Warn("payment proof upload failed, paying without proof")
		return ""
	}
	return path
}

// Delete is the requester's way out while the claim is DRAFT or PENDING.
func (u *Usecase) Delete(ctx context.Context, actor access.Actor, reqID string) error {
	return u.uow.WithinReimburseTx(ctx, reqID, func(r uow.Repos, rr *domain.Request) error {
		if rr.RequesterID != actor.UserID {
			return workflow.ErrForbidden
		}
		if !rr.Editable() {
			return domain.ErrNotEditable
		}
		if err := r.Reimburses.Delete(ctx, rr.ID); err != nil {
			return err
		}
		return record(ctx, r, rr, workflow.ActionDelete, actor, rr.Status, nil)
	})
}

func (u *Usecase) Get(ctx context.Context, actor access.Actor, reqID string) (*RequestDTO, error) {
	rr, err := u.repo.GetByID(ctx, reqID)
	if err != nil {
		return nil, err
	}
	if !actor.CanSee(rr.RequesterID) {
		return nil, domain.ErrNotFound
	}
	return toDTO(rr), nil
}

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
			Category:  string(d.Category),
			ProjectID: d.ProjectID,
			Text:      []string{d.Description, d.ProjectID, d.Subcategory, d.Trip.Origin, d.Trip.Destination},
		}
	}), nil
}

func (u *Usecase) History(ctx context.Context, actor access.Actor, reqID string) ([]workflow.Event, error) {
	if _, err := u.Get(ctx, actor, reqID); err != nil {
		return nil, err
	}
	out, err := u.events.ListBySubject(ctx, workflow.SubjectReimburse, reqID)
	if err != nil {
		return nil, fmt.Errorf("load reimbursement history: %w", err)
	}
	return out, nil
}
