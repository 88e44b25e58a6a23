package services

import (
	"schooladmin_go/database"
	"schooladmin_go/models"

	"gorm.io/gorm"
)

// DeleteTeacher removes a teacher and the rows they exclusively own. Salary
// and teacher-attendance rows go with the teacher; student attendance they
// marked survives with marked_by cleared.
func DeleteTeacher(id uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var teacher models.Teacher
		if err := tx.First(&teacher, id).Error; err != nil {
			return err
		}

		if err := tx.Where("teacher_id = ?", id).Delete(&models.TeacherAttendance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("teacher_id = ?", id).Delete(&models.Salary{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.StudentAttendance{}).
			Where("marked_by_id = ?", id).
			Update("marked_by_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&teacher).Association("Subjects").Clear(); err != nil {
			return err
		}
		return tx.Delete(&teacher).Error
	})
}

// DeleteStudent removes a student together with their attendance and fee rows.
func DeleteStudent(id uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var student models.Student
		if err := tx.First(&student, id).Error; err != nil {
			return err
		}

		if err := tx.Where("student_id = ?", id).Delete(&models.StudentAttendance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&models.Fee{}).Error; err != nil {
			return err
		}
		return tx.Delete(&student).Error
	})
}

// DeleteClass removes a class and its subjects. Enrolled students are kept;
// their class reference is cleared instead.
func DeleteClass(id uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var class models.Class
		if err := tx.First(&class, id).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Student{}).
			Where("class_id = ?", id).
			Update("class_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("class_id = ?", id).Delete(&models.Subject{}).Error; err != nil {
			return err
		}
		return tx.Delete(&class).Error
	})
}
