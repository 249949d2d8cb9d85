package service

// In-memory repository implementations used by the service tests. They
// mirror the mongo layer's observable behavior: sentinel errors,
// unique-key rejection and status-conditioned conditional writes.

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/domain"
	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- users ---

type memUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[primitive.ObjectID]domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	stored := *user
	stored.ID = id
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.users[id] = stored
	return id, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := user
	return &u, nil
}

func (r *memUserRepo) UpdateProfile(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Gender = user.Gender
	stored.Age = user.Age
	stored.Weight = user.Weight
	stored.Height = user.Height
	stored.FitnessGoal = user.FitnessGoal
	stored.ActivityLevel = user.ActivityLevel
	stored.Targets = user.Targets
	stored.UpdatedAt = time.Now()
	r.users[user.ID] = stored
	return nil
}

// --- foods ---

type memFoodRepo struct {
	mu    sync.Mutex
	foods map[primitive.ObjectID]domain.Food
}

func newMemFoodRepo() *memFoodRepo {
	return &memFoodRepo{foods: make(map[primitive.ObjectID]domain.Food)}
}

func (r *memFoodRepo) Create(_ context.Context, food *domain.Food) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	stored := *food
	stored.ID = id
	r.foods[id] = stored
	return id, nil
}

func (r *memFoodRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	food, ok := r.foods[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	f := food
	return &f, nil
}

func (r *memFoodRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Food, 0, len(ids))
	for _, id := range ids {
		if food, ok := r.foods[id]; ok {
			result = append(result, food)
		}
	}
	return result, nil
}

func (r *memFoodRepo) List(_ context.Context, name, canteen string) ([]domain.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Food, 0, len(r.foods))
	for _, food := range r.foods {
		if name != "" && !strings.Contains(strings.ToLower(food.Name), strings.ToLower(name)) {
			continue
		}
		if canteen != "" && !strings.Contains(strings.ToLower(food.Canteen), strings.ToLower(canteen)) {
			continue
		}
		result = append(result, food)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *memFoodRepo) SetPictureKey(_ context.Context, id primitive.ObjectID, objectKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	food, ok := r.foods[id]
	if !ok {
		return repository.ErrNotFound
	}
	food.PictureKey = objectKey
	r.foods[id] = food
	return nil
}

// --- plans ---

type memPlanRepo struct {
	mu    sync.Mutex
	plans map[primitive.ObjectID]domain.Plan
}

func newMemPlanRepo() *memPlanRepo {
	return &memPlanRepo{plans: make(map[primitive.ObjectID]domain.Plan)}
}

func (r *memPlanRepo) Create(_ context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	stored := *plan
	stored.ID = id
	stored.TemplateMenus = append([]primitive.ObjectID(nil), plan.TemplateMenus...)
	r.plans[id] = stored
	return id, nil
}

func (r *memPlanRepo) GetByIDAndOwner(_ context.Context, id, owner primitive.ObjectID) (*domain.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	plan, ok := r.plans[id]
	if !ok || plan.Owner != owner {
		return nil, repository.ErrNotFound
	}
	p := plan
	p.TemplateMenus = append([]primitive.ObjectID(nil), plan.TemplateMenus...)
	return &p, nil
}

func (r *memPlanRepo) GetByOwner(_ context.Context, owner primitive.ObjectID) ([]domain.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Plan, 0)
	for _, plan := range r.plans {
		if plan.Owner == owner {
			result = append(result, plan)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID.Hex() < result[j].ID.Hex() })
	return result, nil
}

func (r *memPlanRepo) AddTemplateMenu(_ context.Context, id, owner, foodID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	plan, ok := r.plans[id]
	if !ok || plan.Owner != owner {
		return repository.ErrNotFound
	}
	plan.TemplateMenus = append(plan.TemplateMenus, foodID)
	r.plans[id] = plan
	return nil
}

func (r *memPlanRepo) RemoveTemplateMenu(_ context.Context, id, owner, foodID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	plan, ok := r.plans[id]
	if !ok || plan.Owner != owner {
		return repository.ErrNotFound
	}
	// Matches the $pull semantics of the persistent layer: every
	// occurrence of the value goes.
	kept := plan.TemplateMenus[:0]
	for _, menu := range plan.TemplateMenus {
		if menu != foodID {
			kept = append(kept, menu)
		}
	}
	plan.TemplateMenus = kept
	r.plans[id] = plan
	return nil
}

// --- daily progress ---

type memProgressRepo struct {
	mu      sync.Mutex
	records map[primitive.ObjectID]domain.DailyProgress
}

func newMemProgressRepo() *memProgressRepo {
	return &memProgressRepo{records: make(map[primitive.ObjectID]domain.DailyProgress)}
}

func copyProgress(p domain.DailyProgress) domain.DailyProgress {
	c := p
	c.EatenTemplateMenus = append([]primitive.ObjectID(nil), p.EatenTemplateMenus...)
	c.ExcessDailyFoods = append([]domain.ExcessFood(nil), p.ExcessDailyFoods...)
	return c
}

func (r *memProgressRepo) Create(_ context.Context, progress *domain.DailyProgress) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Unique (plan_id, date) index.
	for _, existing := range r.records {
		if existing.PlanID == progress.PlanID && existing.Date.Equal(progress.Date) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	stored := copyProgress(*progress)
	stored.ID = id
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.records[id] = stored
	return id, nil
}

func (r *memProgressRepo) GetByIDAndUser(_ context.Context, id, userID primitive.ObjectID) (*domain.DailyProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok || record.UserID != userID {
		return nil, repository.ErrNotFound
	}
	c := copyProgress(record)
	return &c, nil
}

func (r *memProgressRepo) FindByPlanAndDateRange(_ context.Context, planID, userID primitive.ObjectID, from, to time.Time) (*domain.DailyProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range r.records {
		if record.PlanID != planID || record.UserID != userID {
			continue
		}
		if !record.Date.Before(from) && record.Date.Before(to) {
			c := copyProgress(record)
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memProgressRepo) CountByPlan(_ context.Context, planID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, record := range r.records {
		if record.PlanID == planID {
			count++
		}
	}
	return count, nil
}

func (r *memProgressRepo) ReplaceTracking(_ context.Context, id primitive.ObjectID, eaten *[]primitive.ObjectID, excess *[]domain.ExcessFood) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return repository.ErrNotFound
	}
	if record.Status == domain.ProgressSaved {
		return repository.ErrConflict
	}
	if eaten != nil {
		record.EatenTemplateMenus = append([]primitive.ObjectID(nil), *eaten...)
	}
	if excess != nil {
		record.ExcessDailyFoods = append([]domain.ExcessFood(nil), *excess...)
	}
	record.UpdatedAt = time.Now()
	r.records[id] = record
	return nil
}

func (r *memProgressRepo) Complete(_ context.Context, id primitive.ObjectID, caloriesExceeded, budgetExceeded float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return repository.ErrNotFound
	}
	if record.Status == domain.ProgressSaved {
		return repository.ErrConflict
	}
	record.RecommendationData.CaloriesExceeded = caloriesExceeded
	record.RecommendationData.BudgetExceeded = budgetExceeded
	record.Status = domain.ProgressRecommendation
	record.UpdatedAt = time.Now()
	r.records[id] = record
	return nil
}

func (r *memProgressRepo) Save(_ context.Context, id primitive.ObjectID, exercise *primitive.ObjectID, minutes *float64, exercised *bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return repository.ErrNotFound
	}
	if record.Status != domain.ProgressRecommendation {
		return repository.ErrConflict
	}
	if exercise != nil {
		e := *exercise
		record.RecommendationData.ExerciseSelected = &e
	}
	if minutes != nil {
		m := *minutes
		record.RecommendationData.ExerciseTimeMinutes = &m
	}
	if exercised != nil {
		record.RecommendationData.ActuallyExercised = *exercised
	}
	record.Status = domain.ProgressSaved
	record.UpdatedAt = time.Now()
	r.records[id] = record
	return nil
}

func (r *memProgressRepo) ListSavedByPlan(_ context.Context, planID, userID primitive.ObjectID) ([]domain.DailyProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.DailyProgress, 0)
	for _, record := range r.records {
		if record.PlanID == planID && record.UserID == userID && record.Status == domain.ProgressSaved {
			result = append(result, copyProgress(record))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DayNumber < result[j].DayNumber })
	return result, nil
}

// --- exercises ---

type memExerciseRepo struct {
	mu        sync.Mutex
	exercises map[primitive.ObjectID]domain.Exercise
}

func newMemExerciseRepo() *memExerciseRepo {
	return &memExerciseRepo{exercises: make(map[primitive.ObjectID]domain.Exercise)}
}

func (r *memExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	exercise, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e := exercise
	return &e, nil
}

func (r *memExerciseRepo) List(_ context.Context) ([]domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Exercise, 0, len(r.exercises))
	for _, exercise := range r.exercises {
		result = append(result, exercise)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *memExerciseRepo) UpsertByName(_ context.Context, name string, calPerHour float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, exercise := range r.exercises {
		if exercise.Name == name {
			exercise.CalPerHour = calPerHour
			r.exercises[id] = exercise
			return nil
		}
	}
	id := primitive.NewObjectID()
	r.exercises[id] = domain.Exercise{ID: id, Name: name, CalPerHour: calPerHour, CreatedAt: time.Now()}
	return nil
}
