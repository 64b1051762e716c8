package service

import (
	"context"
	"encoding/json"
	"testing"

	"insuretrack/internal/contract"
	"insuretrack/internal/domain/entity"
	"insuretrack/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCOIRepo struct {
	byID map[string]*entity.GeneratedCOI
}

func newMemCOIRepo(cois ...*entity.GeneratedCOI) *memCOIRepo {
	repo := &memCOIRepo{byID: map[string]*entity.GeneratedCOI{}}
	for _, coi := range cois {
		repo.byID[coi.ID] = coi
	}
	return repo
}

func (m *memCOIRepo) FindAll() ([]*entity.GeneratedCOI, error) {
	var out []*entity.GeneratedCOI
	for _, coi := range m.byID {
		out = append(out, coi)
	}
	return out, nil
}

func (m *memCOIRepo) FindByID(id string) (*entity.GeneratedCOI, error) {
	return m.byID[id], nil
}

func (m *memCOIRepo) FindByAccessToken(token string) (*entity.GeneratedCOI, error) {
	for _, coi := range m.byID {
		if coi.AccessToken == token {
			return coi, nil
		}
	}
	return nil, nil
}

func (m *memCOIRepo) FindByProject(projectID string) ([]*entity.GeneratedCOI, error) {
	var out []*entity.GeneratedCOI
	for _, coi := range m.byID {
		if coi.ProjectID == projectID {
			out = append(out, coi)
		}
	}
	return out, nil
}

func (m *memCOIRepo) Save(coi *entity.GeneratedCOI) error {
	m.byID[coi.ID] = coi
	return nil
}

func (m *memCOIRepo) Delete(coi *entity.GeneratedCOI) error {
	delete(m.byID, coi.ID)
	return nil
}

type memSubRepo struct {
	byID map[string]*entity.ProjectSubcontractor
}

func newMemSubRepo(subs ...*entity.ProjectSubcontractor) *memSubRepo {
	repo := &memSubRepo{byID: map[string]*entity.ProjectSubcontractor{}}
	for _, sub := range subs {
		repo.byID[sub.ID] = sub
	}
	return repo
}

func (m *memSubRepo) FindAll() ([]*entity.ProjectSubcontractor, error) {
	var out []*entity.ProjectSubcontractor
	for _, sub := range m.byID {
		out = append(out, sub)
	}
	return out, nil
}

func (m *memSubRepo) FindByID(id string) (*entity.ProjectSubcontractor, error) {
	return m.byID[id], nil
}

func (m *memSubRepo) FindByProject(projectID string) ([]*entity.ProjectSubcontractor, error) {
	var out []*entity.ProjectSubcontractor
	for _, sub := range m.byID {
		if sub.ProjectID == projectID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (m *memSubRepo) FindBySubcontractor(subcontractorID string) ([]*entity.ProjectSubcontractor, error) {
	var out []*entity.ProjectSubcontractor
	for _, sub := range m.byID {
		if sub.SubcontractorID == subcontractorID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (m *memSubRepo) Save(sub *entity.ProjectSubcontractor) error {
	m.byID[sub.ID] = sub
	return nil
}

func (m *memSubRepo) Delete(sub *entity.ProjectSubcontractor) error {
	delete(m.byID, sub.ID)
	return nil
}

type memProjectRepo struct {
	byID map[string]*entity.Project
}

func (m *memProjectRepo) FindAll() ([]*entity.Project, error)         { return nil, nil }
func (m *memProjectRepo) FindByGC(string) ([]*entity.Project, error)  { return nil, nil }
func (m *memProjectRepo) Save(p *entity.Project) error                { m.byID[p.ID] = p; return nil }
func (m *memProjectRepo) Delete(p *entity.Project) error              { delete(m.byID, p.ID); return nil }
func (m *memProjectRepo) FindByID(id string) (*entity.Project, error) { return m.byID[id], nil }

type memContractorRepo struct {
	byID map[string]*entity.Contractor
}

func (m *memContractorRepo) FindAll() ([]*entity.Contractor, error) { return nil, nil }
func (m *memContractorRepo) FindByType(entity.ContractorType) ([]*entity.Contractor, error) {
	return nil, nil
}
func (m *memContractorRepo) Save(c *entity.Contractor) error   { m.byID[c.ID] = c; return nil }
func (m *memContractorRepo) Delete(c *entity.Contractor) error { delete(m.byID, c.ID); return nil }
func (m *memContractorRepo) FindByID(id string) (*entity.Contractor, error) {
	return m.byID[id], nil
}

type fakeS3 struct {
	uploads map[string][]byte
	deleted []string
}

func (f *fakeS3) UploadFile(data []byte, filename string) (string, error) {
	if f.uploads == nil {
		f.uploads = map[string][]byte{}
	}
	key := "cois/" + filename
	f.uploads[key] = data
	return key, nil
}

func (f *fakeS3) DeleteFile(key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func adminUser() *entity.User {
	return &entity.User{ID: 1, Email: "admin@test", Role: entity.UserRoleAdmin, Active: true}
}

func newTestCOIService(cois []*entity.GeneratedCOI, subs []*entity.ProjectSubcontractor) (*DefaultCOIService, *captureMailer, *memCOIRepo, *memSubRepo) {
	coiRepo := newMemCOIRepo(cois...)
	subRepo := newMemSubRepo(subs...)
	projectRepo := &memProjectRepo{byID: map[string]*entity.Project{
		"p1": {ID: "p1", ProjectName: "Tower One", GCID: "gc1"},
	}}
	contractorRepo := &memContractorRepo{byID: map[string]*entity.Contractor{
		"gc1": {ID: "gc1", CompanyName: "BuildCo", Email: "gc@buildco.test", ContractorType: entity.ContractorTypeGC},
	}}
	mailer := &captureMailer{}

	svc := NewCOIService(coiRepo, subRepo, projectRepo, contractorRepo, &fakeS3{}, mailer, validator.New(), "https://portal.test")
	return svc, mailer, coiRepo, subRepo
}

func TestCreateCOINotifiesBroker(t *testing.T) {
	sub := testAssociation()
	svc, mailer, coiRepo, _ := newTestCOIService(nil, []*entity.ProjectSubcontractor{sub})

	resp, apierr := svc.CreateCOI(context.Background(), adminUser(), &contract.CreateCOIRequest{
		ProjectID:       "p1",
		SubcontractorID: "ps1",
		BrokerName:      "Jordan",
		BrokerEmail:     "broker@ins.test",
	})
	require.Nil(t, apierr)

	assert.Equal(t, string(entity.COIStatusAwaitingBrokerInfo), resp.Status)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, []string{"broker@ins.test"}, mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Body, "https://portal.test/broker/coi/")

	stored, _ := coiRepo.FindByID(resp.ID)
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.AccessToken)
	assert.NotZero(t, stored.SubNotifiedDate)
	assert.NotZero(t, stored.BrokerNotifiedDate)
}

func TestCreateCOIWithoutBrokerSkipsEmail(t *testing.T) {
	sub := testAssociation()
	svc, mailer, coiRepo, _ := newTestCOIService(nil, []*entity.ProjectSubcontractor{sub})

	resp, apierr := svc.CreateCOI(context.Background(), adminUser(), &contract.CreateCOIRequest{
		ProjectID:       "p1",
		SubcontractorID: "ps1",
	})
	require.Nil(t, apierr)

	assert.Empty(t, mailer.sent)
	stored, _ := coiRepo.FindByID(resp.ID)
	assert.Zero(t, stored.BrokerNotifiedDate)
}

func TestCreateCOIUnknownSubcontractor(t *testing.T) {
	svc, _, _, _ := newTestCOIService(nil, nil)

	_, apierr := svc.CreateCOI(context.Background(), adminUser(), &contract.CreateCOIRequest{
		ProjectID:       "p1",
		SubcontractorID: "nope",
	})
	assert.Equal(t, apierror.NotFoundError, apierr)
}

func TestGetCOIByTokenUnknown(t *testing.T) {
	svc, _, _, _ := newTestCOIService(nil, nil)

	view, apierr := svc.GetCOIByToken("missing")
	assert.Nil(t, view)
	assert.Equal(t, apierror.InvalidTokenError, apierr)
}

func TestSubmitByTokenAdvancesStatus(t *testing.T) {
	coi := &entity.GeneratedCOI{
		ID:              "c1",
		ProjectID:       "p1",
		SubcontractorID: "ps1",
		Status:          entity.COIStatusAwaitingBrokerInfo,
		AccessToken:     "tok123",
	}
	svc, _, _, _ := newTestCOIService([]*entity.GeneratedCOI{coi}, []*entity.ProjectSubcontractor{testAssociation()})

	view, apierr := svc.SubmitByToken("tok123", &contract.BrokerSubmitRequest{
		BrokerName:  "Jordan",
		BrokerEmail: "broker@ins.test",
		GeneralLiability: &contract.CoverageLine{
			Carrier:        "Hartford",
			PolicyNumber:   "GL-100",
			Limit:          1000000,
			EffectiveDate:  "2026-01-01",
			ExpirationDate: "2027-01-01",
		},
	})
	require.Nil(t, apierr)

	assert.Equal(t, string(entity.COIStatusAwaitingBrokerUpload), view.Status)
	require.NotNil(t, view.GeneralLiability)
	assert.Equal(t, "Hartford", view.GeneralLiability.Carrier)
	assert.Equal(t, "2027-01-01", view.GeneralLiability.ExpirationDate)
	assert.Equal(t, "Tower One", view.ProjectName)
	assert.Equal(t, "BuildCo", view.GCName)

	assert.Equal(t, "broker@ins.test", coi.BrokerEmail)
	assert.NotZero(t, coi.GLExpirationDate)
}

func TestApproveCOIWithUnwaivedDeficiency(t *testing.T) {
	analysis, _ := json.Marshal(&contract.PolicyAnalysis{
		Deficiencies: []contract.Deficiency{
			{ID: "d1", CoverageType: "general_liability", Description: "GL limit below requirement"},
		},
	})
	coi := &entity.GeneratedCOI{
		ID:              "c1",
		ProjectID:       "p1",
		SubcontractorID: "ps1",
		Status:          entity.COIStatusAwaitingAdminReview,
		PolicyAnalysis:  string(analysis),
	}
	sub := testAssociation()
	sub.ComplianceStatus = entity.CompliancePendingBroker

	svc, mailer, _, _ := newTestCOIService([]*entity.GeneratedCOI{coi}, []*entity.ProjectSubcontractor{sub})

	resp, apierr := svc.ApproveCOI(context.Background(), adminUser(), "c1", &contract.ApproveCOIRequest{})
	require.Nil(t, apierr)

	assert.Equal(t, string(entity.COIStatusDeficiencyPending), resp.Status)
	assert.Equal(t, entity.CompliancePendingBroker, sub.ComplianceStatus)
	assert.Empty(t, mailer.sent)
}

func TestApproveCOIWithWaiversActivates(t *testing.T) {
	analysis, _ := json.Marshal(&contract.PolicyAnalysis{
		Deficiencies: []contract.Deficiency{
			{ID: "d1", CoverageType: "umbrella", Description: "Umbrella missing"},
		},
	})
	coi := &entity.GeneratedCOI{
		ID:                     "c1",
		ProjectID:              "p1",
		SubcontractorID:        "ps1",
		Status:                 entity.COIStatusAwaitingAdminReview,
		BrokerEmail:            "broker@ins.test",
		PolicyAnalysis:         string(analysis),
		GracePeriodExpiry:      123,
		MarkedNonCompliantDate: 456,
		IsSubDeactivated:       true,
	}
	sub := testAssociation()
	sub.ComplianceStatus = entity.CompliancePendingBroker

	svc, mailer, _, _ := newTestCOIService([]*entity.GeneratedCOI{coi}, []*entity.ProjectSubcontractor{sub})

	resp, apierr := svc.ApproveCOI(context.Background(), adminUser(), "c1", &contract.ApproveCOIRequest{
		Overrides: map[string]contract.ManualOverride{
			"d1": {Reason: "GC accepted risk", ApprovedBy: "admin@test"},
		},
	})
	require.Nil(t, apierr)

	assert.Equal(t, string(entity.COIStatusActive), resp.Status)
	assert.Equal(t, entity.ComplianceCompliant, sub.ComplianceStatus)

	// Approval wipes the expiration bookkeeping from any earlier lapse.
	assert.Zero(t, coi.GracePeriodExpiry)
	assert.Zero(t, coi.MarkedNonCompliantDate)
	assert.False(t, coi.IsSubDeactivated)

	assert.ElementsMatch(t, []string{"broker@ins.test", "sub@acme.test", "gc@buildco.test"}, mailer.recipients())
	require.NotNil(t, resp.ManualOverrides)
	assert.Contains(t, resp.ManualOverrides, "d1")
}

func TestApproveCOIRejectsNonAdmin(t *testing.T) {
	svc, _, _, _ := newTestCOIService(nil, nil)

	user := &entity.User{ID: 2, Role: entity.UserRoleGC, Active: true}
	_, apierr := svc.ApproveCOI(context.Background(), user, "c1", &contract.ApproveCOIRequest{})
	assert.Equal(t, apierror.AdminOnlyError, apierr)
}

func TestApproveCOIWrongState(t *testing.T) {
	coi := &entity.GeneratedCOI{
		ID:              "c1",
		ProjectID:       "p1",
		SubcontractorID: "ps1",
		Status:          entity.COIStatusActive,
	}
	svc, _, _, _ := newTestCOIService([]*entity.GeneratedCOI{coi}, []*entity.ProjectSubcontractor{testAssociation()})

	_, apierr := svc.ApproveCOI(context.Background(), adminUser(), "c1", &contract.ApproveCOIRequest{})
	assert.Equal(t, apierror.COINotReviewableError, apierr)
}

func TestDeleteCOIRemovesStoredCertificate(t *testing.T) {
	coi := &entity.GeneratedCOI{
		ID:          "c1",
		ProjectID:   "p1",
		FirstCOIKey: "cois/cert.pdf",
	}
	svc, _, coiRepo, _ := newTestCOIService([]*entity.GeneratedCOI{coi}, nil)
	s3 := svc.S3.(*fakeS3)

	serr := svc.DeleteCOI(adminUser(), "c1")
	require.Nil(t, serr)

	assert.Equal(t, []string{"cois/cert.pdf"}, s3.deleted)
	stored, _ := coiRepo.FindByID("c1")
	assert.Nil(t, stored)
}
