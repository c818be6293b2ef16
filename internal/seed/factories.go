package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"sanxing/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the password assigned to every generated demo account.
const DemoPassword = "demo-password-123"

// Factory builds demo entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a demo user with a fake identity.
func (f *Factory) CreateUser() (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    fmt.Sprintf("%s.%d@example.com", gofakeit.Username(), f.rng.Intn(100000)),
		Username: gofakeit.Name(),
		Password: string(hashed),
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateAnswer persists a demo answer spread over the past maxDays so
// activity views have something to show.
func (f *Factory) CreateAnswer(user *models.User, question *models.Question, maxDays int) (*models.Answer, error) {
	if maxDays <= 0 {
		maxDays = 90
	}
	answer := &models.Answer{
		UserID:     user.ID,
		QuestionID: question.ID,
		Content:    gofakeit.Paragraph(1, 3, 8, "\n"),
		CreatedAt: time.Now().
			Add(-time.Duration(f.rng.Intn(maxDays)) * 24 * time.Hour).
			Add(-time.Duration(f.rng.Intn(24)) * time.Hour),
	}
	if err := f.db.Create(answer).Error; err != nil {
		return nil, err
	}
	return answer, nil
}

// CreateFolder persists a demo folder containing a handful of questions.
func (f *Factory) CreateFolder(user *models.User, questions []models.Question) (*models.Folder, error) {
	folder := &models.Folder{
		Name:   gofakeit.HipsterWord() + " notes",
		UserID: user.ID,
	}
	if err := f.db.Create(folder).Error; err != nil {
		return nil, err
	}

	perm := f.rng.Perm(len(questions))
	if len(perm) > 3 {
		perm = perm[:3]
	}
	for _, idx := range perm {
		membership := models.FolderQuestion{FolderID: folder.ID, QuestionID: questions[idx].ID}
		if err := f.db.Create(&membership).Error; err != nil {
			return nil, err
		}
	}
	return folder, nil
}

// SeedDemo populates the database with demo users journaling against the
// built-in corpus.
func (f *Factory) SeedDemo(numUsers, answersPerUser int) error {
	var questions []models.Question
	if err := f.db.Where("author_id IS NULL").Find(&questions).Error; err != nil {
		return err
	}
	if len(questions) == 0 {
		return fmt.Errorf("no built-in questions; run Questions first")
	}

	for i := 0; i < numUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return err
		}
		for j := 0; j < answersPerUser; j++ {
			question := questions[f.rng.Intn(len(questions))]
			if _, err := f.CreateAnswer(user, &question, 90); err != nil {
				return err
			}
		}
		if _, err := f.CreateFolder(user, questions); err != nil {
			return err
		}
	}

	log.Printf("Seeded %d demo users with %d answers each", numUsers, answersPerUser)
	return nil
}
