package export

import (
	"context"
	"fmt"

	"github.com/example/quizbot/internal/database"
	"github.com/xuri/excelize/v2"
)

// Workbook writes all stored quizzes and recorded results into an xlsx
// file at path, one sheet per table.
func Workbook(ctx context.Context, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeQuizzes(ctx, f); err != nil {
		return err
	}
	if err := writeResults(ctx, f); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeQuizzes(ctx context.Context, f *excelize.File) error {
	const sheet = "Quizzes"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := setRow(f, sheet, 1, "ID", "Name", "Questions", "Created"); err != nil {
		return err
	}

	quizzes, err := database.NewQuizRepository().List(ctx)
	if err != nil {
		return err
	}
	for i, q := range quizzes {
		err := setRow(f, sheet, i+2,
			q.ID, q.Name, q.QuestionCount, q.CreatedAt.Format("2006-01-02 15:04"))
		if err != nil {
			return err
		}
	}
	return nil
}

func writeResults(ctx context.Context, f *excelize.File) error {
	const sheet = "Results"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := setRow(f, sheet, 1, "User", "Quiz", "Correct", "Total", "Taken"); err != nil {
		return err
	}

	results, err := database.NewResultRepository().GetAll(ctx)
	if err != nil {
		return err
	}
	for i, r := range results {
		err := setRow(f, sheet, i+2,
			r.UserID, r.QuizID, r.Correct, r.Total, r.TakenAt.Format("2006-01-02 15:04"))
		if err != nil {
			return err
		}
	}
	return nil
}

// setRow writes values into row n starting at column A
func setRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
