package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Lilsadiq8345/Todo/gateway"
	"github.com/Lilsadiq8345/Todo/logging"
	"github.com/Lilsadiq8345/Todo/models"
)

// TaskService drži listu zadataka prijavljenog korisnika u memoriji i
// sprovodi sve izmene preko gateway-a. Lokalno stanje se menja isključivo
// iz odgovora servera; neuspela operacija ostavlja listu netaknutom.
type TaskService struct {
	mu           sync.RWMutex
	api          *gateway.Client
	tasks        []models.Task
	searchTerm   string
	statusFilter StatusFilter
}

func NewTaskService(api *gateway.Client) *TaskService {
	return &TaskService{
		api:          api,
		statusFilter: FilterAll,
	}
}

// FetchAll zamenjuje celu listu trenutnim stanjem sa servera.
func (s *TaskService) FetchAll(ctx context.Context) error {
	var fetched []models.Task
	if err := s.api.Get(ctx, "/api/tasks/", &fetched); err != nil {
		logging.Logger.Warnf("Event ID: TASKS_FETCH_FAILED, Description: failed to fetch tasks: %v", err)
		return fmt.Errorf("failed to fetch tasks: %w", err)
	}

	s.mu.Lock()
	s.tasks = fetched
	s.mu.Unlock()

	logging.Logger.Infof("Event ID: TASKS_FETCHED, Description: fetched %d tasks", len(fetched))
	return nil
}

// Create validira naslov lokalno, šalje zadatak serveru i dodaje vraćeni
// zapis (sa dodeljenim ID-em) na kraj liste.
func (s *TaskService) Create(ctx context.Context, draft models.TaskDraft) (models.Task, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return models.Task{}, gateway.NewFieldError("title", "title is required")
	}
	if draft.Status != "" && !models.ValidStatus(draft.Status) {
		return models.Task{}, gateway.NewFieldError("status", fmt.Sprintf("unknown status: %q", draft.Status))
	}

	var created models.Task
	if err := s.api.Post(ctx, "/api/tasks/", draft, &created); err != nil {
		return models.Task{}, err
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, created)
	s.mu.Unlock()

	logging.Logger.Infof("Event ID: TASK_CREATED, Description: task %d created", created.ID)
	return created, nil
}

// Update šalje parcijalnu izmenu; lokalni zapis se zamenjuje u celosti
// odgovorom servera, bez spajanja polja na klijentu.
func (s *TaskService) Update(ctx context.Context, id int, patch models.TaskPatch) (models.Task, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return models.Task{}, gateway.NewFieldError("title", "title is required")
	}
	if patch.Status != nil && !models.ValidStatus(*patch.Status) {
		return models.Task{}, gateway.NewFieldError("status", fmt.Sprintf("unknown status: %q", *patch.Status))
	}

	var updated models.Task
	if err := s.api.Patch(ctx, fmt.Sprintf("/api/tasks/%d/", id), patch, &updated); err != nil {
		return models.Task{}, err
	}

	s.mu.Lock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i] = updated
			break
		}
	}
	s.mu.Unlock()

	logging.Logger.Infof("Event ID: TASK_UPDATED, Description: task %d updated", id)
	return updated, nil
}

// Remove briše zadatak na serveru pa tek onda iz liste; nema optimističkog brisanja.
func (s *TaskService) Remove(ctx context.Context, id int) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("/api/tasks/%d/", id)); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	logging.Logger.Infof("Event ID: TASK_REMOVED, Description: task %d removed", id)
	return nil
}

// ToggleCompletion obrće zastavicu završenosti; server usklađuje status
// sa zastavicom, pa se preuzima njegov odgovor u celosti.
func (s *TaskService) ToggleCompletion(ctx context.Context, id int) (models.Task, error) {
	s.mu.RLock()
	var current *models.Task
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			current = &s.tasks[i]
			break
		}
	}
	s.mu.RUnlock()

	if current == nil {
		return models.Task{}, gateway.ErrNotFound
	}

	flipped := !current.IsCompleted
	return s.Update(ctx, id, models.TaskPatch{IsCompleted: &flipped})
}

// SetSearchTerm postavlja termin pretrage za izvedeni prikaz.
func (s *TaskService) SetSearchTerm(term string) {
	s.mu.Lock()
	s.searchTerm = term
	s.mu.Unlock()
}

// SetStatusFilter postavlja filter statusa; nepoznata vrednost je greška.
func (s *TaskService) SetStatusFilter(v string) error {
	filter, err := ParseStatusFilter(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.statusFilter = filter
	s.mu.Unlock()
	return nil
}

// DerivedView je čista projekcija liste kroz pretragu i filter statusa,
// u redosledu koji je vratio server.
func (s *TaskService) DerivedView() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !matchesSearch(s.searchTerm, t.Title, t.Description) {
			continue
		}
		if !matchesStatus(s.statusFilter, t) {
			continue
		}
		view = append(view, t)
	}
	return view
}

// All vraća kopiju cele liste bez filtera.
func (s *TaskService) All() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.Task, len(s.tasks))
	copy(all, s.tasks)
	return all
}

// Counts vraća ukupan broj zadataka i broj završenih, za zaglavlje prikaza.
func (s *TaskService) Counts() (total, completed int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total = len(s.tasks)
	for _, t := range s.tasks {
		if t.IsCompleted {
			completed++
		}
	}
	return total, completed
}

// Reset prazni lokalno stanje; poziva se pri odjavi umesto ponovnog učitavanja procesa.
func (s *TaskService) Reset() {
	s.mu.Lock()
	s.tasks = nil
	s.searchTerm = ""
	s.statusFilter = FilterAll
	s.mu.Unlock()
}
