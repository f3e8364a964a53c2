package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/worklink-hub/worklink-platform/internal/domain/account"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REGISTER COMPANY COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// RegisterCompanyCommand contains the data to register a company account.
type RegisterCompanyCommand struct {
	// Name is the company's display name.
	Name string

	// Email is the login email, unique across companies.
	Email string

	// Password is the plaintext password; only its hash is stored.
	Password string

	// Description is an optional profile text.
	Description string

	// Website is the company's public site.
	Website string
}

// Validate validates the command.
func (c RegisterCompanyCommand) Validate() error {
	if c.Name == "" {
		return errors.New("register_company: name is required")
	}
	if c.Email == "" {
		return errors.New("register_company: email is required")
	}
	if len(c.Password) < 8 {
		return errors.New("register_company: password must be at least 8 characters")
	}
	return nil
}

// RegisterCompanyResult contains the result of registering a company.
type RegisterCompanyResult struct {
	CompanyID string
}

// RegisterCompanyHandler handles the RegisterCompanyCommand.
type RegisterCompanyHandler struct {
	companyRepo account.CompanyRepository
	hasher      PasswordHasher
	idGen       IDGenerator
}

// NewRegisterCompanyHandler creates a new RegisterCompanyHandler.
func NewRegisterCompanyHandler(
	companyRepo account.CompanyRepository,
	hasher PasswordHasher,
	idGen IDGenerator,
) *RegisterCompanyHandler {
	return &RegisterCompanyHandler{
		companyRepo: companyRepo,
		hasher:      hasher,
		idGen:       idGen,
	}
}

// Handle executes the register company command.
func (h *RegisterCompanyHandler) Handle(ctx context.Context, cmd RegisterCompanyCommand) (*RegisterCompanyResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, shared.NewDomainError("account", "RegisterCompany", shared.ErrValidation, err.Error())
	}

	hash, err := h.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("register_company: failed to hash password: %w", err)
	}

	company, err := account.NewCompany(account.NewCompanyParams{
		ID:           h.idGen.GenerateID(),
		Name:         cmd.Name,
		Email:        cmd.Email,
		PasswordHash: hash,
		Description:  cmd.Description,
		Website:      cmd.Website,
	})
	if err != nil {
		return nil, err
	}

	if err := h.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}

	return &RegisterCompanyResult{CompanyID: company.ID}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// REGISTER STUDENT COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// RegisterStudentCommand contains the data to register a student account.
type RegisterStudentCommand struct {
	// Name is the student's display name.
	Name string

	// Email is the login email, unique across students.
	Email string

	// Password is the plaintext password; only its hash is stored.
	Password string

	// Bio is an optional profile text.
	Bio string

	// Skills is the set of claimed skill names. Each must exist in the
	// skill catalog.
	Skills []string
}

// Validate validates the command.
func (c RegisterStudentCommand) Validate() error {
	if c.Name == "" {
		return errors.New("register_student: name is required")
	}
	if c.Email == "" {
		return errors.New("register_student: email is required")
	}
	if len(c.Password) < 8 {
		return errors.New("register_student: password must be at least 8 characters")
	}
	return nil
}

// RegisterStudentResult contains the result of registering a student.
type RegisterStudentResult struct {
	StudentID string
}

// RegisterStudentHandler handles the RegisterStudentCommand.
type RegisterStudentHandler struct {
	studentRepo  account.StudentRepository
	skillCatalog account.SkillCatalog
	hasher       PasswordHasher
	idGen        IDGenerator
}

// NewRegisterStudentHandler creates a new RegisterStudentHandler.
func NewRegisterStudentHandler(
	studentRepo account.StudentRepository,
	skillCatalog account.SkillCatalog,
	hasher PasswordHasher,
	idGen IDGenerator,
) *RegisterStudentHandler {
	return &RegisterStudentHandler{
		studentRepo:  studentRepo,
		skillCatalog: skillCatalog,
		hasher:       hasher,
		idGen:        idGen,
	}
}

// Handle executes the register student command.
func (h *RegisterStudentHandler) Handle(ctx context.Context, cmd RegisterStudentCommand) (*RegisterStudentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, shared.NewDomainError("account", "RegisterStudent", shared.ErrValidation, err.Error())
	}

	// Every claimed skill must exist in the catalog.
	skills := make([]shared.SkillName, 0, len(cmd.Skills))
	for _, raw := range cmd.Skills {
		name := shared.SkillName(raw).Normalize()
		if _, err := h.skillCatalog.GetByName(ctx, name); err != nil {
			return nil, err
		}
		skills = append(skills, name)
	}

	hash, err := h.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("register_student: failed to hash password: %w", err)
	}

	student, err := account.NewStudent(account.NewStudentParams{
		ID:           h.idGen.GenerateID(),
		Name:         cmd.Name,
		Email:        cmd.Email,
		PasswordHash: hash,
		Bio:          cmd.Bio,
		Skills:       skills,
	})
	if err != nil {
		return nil, err
	}

	if err := h.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	return &RegisterStudentResult{StudentID: student.ID}, nil
}
