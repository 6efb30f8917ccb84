package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/store"
	"github.com/MKhiriev/go-notes-sync/models"
)

const (
	callRecordFolderTitle = "Call notes"
	exportDateLayout      = "01-02 15:04"

	exportFolderFormat  = "%s\n"
	exportDateFormat    = "  %s\n"
	exportContentFormat = "    %s\n"
)

type clientExportService struct {
	notes store.NoteRepository
	data  store.DataRepository

	loc    *time.Location
	logger *logger.Logger
}

func NewClientExportService(notes store.NoteRepository, data store.DataRepository, logger *logger.Logger) ClientExportService {
	return &clientExportService{
		notes:  notes,
		data:   data,
		loc:    time.Local,
		logger: logger,
	}
}

// ExportText writes user folders and the call-record folder with their notes
// first, then the notes kept directly in the root folder. Trashed rows are
// left out.
func (s *clientExportService) ExportText(ctx context.Context, w io.Writer) error {
	log := logger.FromContext(ctx)
	out := bufio.NewWriter(w)

	folders, err := s.notes.Query(ctx, store.NoteFilter{
		Types:            []models.NoteType{models.NoteTypeFolder},
		ExcludeParentIDs: []int64{models.TrashFolderID},
	})
	if err != nil {
		return fmt.Errorf("query folders: %w", err)
	}

	callFolder, err := s.notes.Get(ctx, models.CallRecordFolderID)
	if err != nil {
		return fmt.Errorf("load call record folder: %w", err)
	}
	folders = append([]models.NoteRow{callFolder}, folders...)

	exported := 0
	for _, folder := range folders {
		title := folder.Snippet
		if folder.ID == models.CallRecordFolderID {
			title = callRecordFolderTitle
		}
		if title != "" {
			fmt.Fprintf(out, exportFolderFormat, title)
		}

		n, err := s.exportFolder(ctx, out, folder.ID)
		if err != nil {
			return err
		}
		exported += n
	}

	n, err := s.exportFolder(ctx, out, models.RootFolderID)
	if err != nil {
		return err
	}
	exported += n

	if err = out.Flush(); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	log.Info().Int("folders", len(folders)).Int("notes", exported).Msg("notes exported as text")
	return nil
}

func (s *clientExportService) exportFolder(ctx context.Context, out *bufio.Writer, folderID int64) (int, error) {
	notes, err := s.notes.Query(ctx, store.NoteFilter{
		ParentIDs: []int64{folderID},
		Types:     []models.NoteType{models.NoteTypeNote},
	})
	if err != nil {
		return 0, fmt.Errorf("query notes of folder %d: %w", folderID, err)
	}

	for _, note := range notes {
		fmt.Fprintf(out, exportDateFormat, s.formatDate(note.ModifiedDate))
		if err = s.exportNote(ctx, out, note.ID); err != nil {
			return 0, err
		}
	}
	return len(notes), nil
}

func (s *clientExportService) exportNote(ctx context.Context, out *bufio.Writer, noteID int64) error {
	rows, err := s.data.Query(ctx, store.DataFilter{NoteIDs: []int64{noteID}})
	if err != nil {
		return fmt.Errorf("query data of note %d: %w", noteID, err)
	}

	for _, row := range rows {
		switch row.MimeType {
		case models.MimeTypeCallNote:
			// data3 holds the phone number, data1 the call date and content
			// the location
			if row.Data3 != "" {
				fmt.Fprintf(out, exportContentFormat, row.Data3)
			}
			fmt.Fprintf(out, exportContentFormat, s.formatDate(row.Data1))
			if row.Content != "" {
				fmt.Fprintf(out, exportContentFormat, row.Content)
			}
		case models.MimeTypeTextNote:
			if row.Content != "" {
				fmt.Fprintf(out, exportContentFormat, row.Content)
			}
		}
	}

	out.WriteString("\n")
	return nil
}

func (s *clientExportService) formatDate(millis int64) string {
	return time.UnixMilli(millis).In(s.loc).Format(exportDateLayout)
}
