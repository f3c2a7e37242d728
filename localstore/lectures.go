package localstore

import "github.com/sprintnotes/sprintnotes/models"

func (s *Store) SaveLecture(l *models.LectureNote) error {
	return s.db.Save(l).Error
}

func (s *Store) GetLecture(id string) (*models.LectureNote, error) {
	var l models.LectureNote
	if err := s.db.First(&l, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &l, nil
}

func (s *Store) DeleteLecture(id string) error {
	return s.db.Delete(&models.LectureNote{}, "id = ?", id).Error
}

func (s *Store) LecturesForCourse(courseID string) ([]models.LectureNote, error) {
	var lectures []models.LectureNote
	err := s.db.Where("course_id = ?", courseID).Order("updated_at desc").Find(&lectures).Error
	return lectures, err
}

func (s *Store) Lectures() ([]models.LectureNote, error) {
	var lectures []models.LectureNote
	err := s.db.Order("updated_at desc").Find(&lectures).Error
	return lectures, err
}
