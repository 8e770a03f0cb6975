package homework

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"mindsprint_backend/internals/constants"
	"mindsprint_backend/internals/features/homework/assignments/model"
	"mindsprint_backend/internals/features/homework/assignments/service"
	"mindsprint_backend/internals/identity"
)

//go:embed data_homework.json
var defaultData []byte

type HomeworkSeed struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	AssignedTo  string  `json:"assignedTo"`
	AssignedBy  string  `json:"assignedBy"`
	DueDate     *string `json:"dueDate"`
	Category    *string `json:"category"`
	Completed   bool    `json:"completed"`
	ClientNotes *string `json:"clientNotes"`
}

// Service is the part of the homework service seeding goes through.
type Service interface {
	Create(ctx context.Context, caller identity.Identity, in service.CreateInput) (*model.Assignment, error)
	ListForUser(ctx context.Context, userID string) ([]model.Assignment, error)
	Complete(ctx context.Context, caller identity.Identity, taskID string, notes *string) (*model.Assignment, error)
}

// Load reads seeds from filePath, or the bundled samples when it is empty.
func Load(filePath string) ([]HomeworkSeed, error) {
	raw := defaultData
	if filePath != "" {
		b, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		raw = b
	}

	var seeds []HomeworkSeed
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return seeds, nil
}

// SeedHomework creates every seed whose (assignedTo, title) pair is not
// stored yet and returns how many were created.
func SeedHomework(ctx context.Context, svc Service, seeds []HomeworkSeed, log logrus.FieldLogger) (int, error) {
	existing := map[string]map[string]bool{}
	created := 0

	for _, s := range seeds {
		assignee := strings.TrimSpace(s.AssignedTo)
		titles, ok := existing[assignee]
		if !ok {
			list, err := svc.ListForUser(ctx, assignee)
			if err != nil {
				return created, err
			}
			titles = make(map[string]bool, len(list))
			for _, a := range list {
				titles[a.Title] = true
			}
			existing[assignee] = titles
		}

		title := strings.TrimSpace(s.Title)
		if titles[title] {
			log.WithFields(logrus.Fields{"title": title, "assigned_to": assignee}).Info("seed already present, skipped")
			continue
		}

		by := identity.Identity{ID: s.AssignedBy, Role: constants.RoleTherapist}
		a, err := svc.Create(ctx, by, service.CreateInput{
			Title:       s.Title,
			Description: s.Description,
			AssignedTo:  s.AssignedTo,
			DueDate:     s.DueDate,
			Category:    s.Category,
		})
		if err != nil {
			return created, fmt.Errorf("seed %q: %w", title, err)
		}
		if s.Completed {
			if _, err := svc.Complete(ctx, by, a.ID, s.ClientNotes); err != nil {
				return created, fmt.Errorf("seed %q: %w", title, err)
			}
		}
		titles[title] = true
		created++
	}

	log.WithField("created", created).Info("homework seeds applied")
	return created, nil
}
