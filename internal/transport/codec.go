// Package transport defines the wire format of the board service. Messages
// are protobuf well-known types: domain records travel as structpb.Struct,
// ids as wrapperspb.Int64Value. Integer fields inside a Struct are encoded
// as decimal strings so 64-bit ids survive the float64 number type.
package transport

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/dmitrijs2005/hireboard/internal/common"
	"github.com/dmitrijs2005/hireboard/internal/models"
	"google.golang.org/protobuf/types/known/structpb"
)

// Field names shared by client and server.
const (
	FieldID          = "id"
	FieldJobID       = "job_id"
	FieldName        = "name"
	FieldEmail       = "email"
	FieldLinkedinURL = "linkedin_url"
	FieldNotes       = "notes"
	FieldCVURL       = "cv_url"
	FieldStatus      = "status"
	FieldCreatedAt   = "created_at"
	FieldTitle       = "title"
	FieldCandidates  = "candidates"
	FieldScopeID     = "scope_id"
	FieldFileName    = "file_name"
	FieldContentType = "content_type"
	FieldKey         = "key"
	FieldUploadURL   = "upload_url"
	FieldPublicURL   = "public_url"
)

func formatID(id int64) string { return strconv.FormatInt(id, 10) }

func candidateMap(c models.Candidate) map[string]any {
	return map[string]any{
		FieldID:          formatID(c.ID),
		FieldJobID:       formatID(c.JobID),
		FieldName:        c.Name,
		FieldEmail:       c.Email,
		FieldLinkedinURL: c.LinkedinURL,
		FieldNotes:       c.Notes,
		FieldCVURL:       c.CVURL,
		FieldStatus:      string(c.Status),
		FieldCreatedAt:   c.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// EncodeCandidate converts a candidate to its wire form.
func EncodeCandidate(c models.Candidate) (*structpb.Struct, error) {
	return structpb.NewStruct(candidateMap(c))
}

// DecodeCandidate parses a candidate. The status must be a valid stage.
func DecodeCandidate(s *structpb.Struct) (models.Candidate, error) {
	var c models.Candidate
	var err error

	if c.ID, err = int64Field(s, FieldID); err != nil {
		return c, err
	}
	if c.JobID, err = int64Field(s, FieldJobID); err != nil {
		return c, err
	}
	c.Name = stringField(s, FieldName)
	c.Email = stringField(s, FieldEmail)
	c.LinkedinURL = stringField(s, FieldLinkedinURL)
	c.Notes = stringField(s, FieldNotes)
	c.CVURL = stringField(s, FieldCVURL)

	c.Status = models.Stage(stringField(s, FieldStatus))
	if !c.Status.Valid() {
		return c, fmt.Errorf("%w: %q", common.ErrInvalidStage, c.Status)
	}

	if raw := stringField(s, FieldCreatedAt); raw != "" {
		if c.CreatedAt, err = time.Parse(time.RFC3339Nano, raw); err != nil {
			return c, fmt.Errorf("%w: created_at: %v", common.ErrorValidation, err)
		}
	}
	return c, nil
}

// EncodeCandidates wraps a list under the "candidates" key, keeping order.
func EncodeCandidates(cs []models.Candidate) (*structpb.Struct, error) {
	list := make([]any, 0, len(cs))
	for _, c := range cs {
		list = append(list, candidateMap(c))
	}
	return structpb.NewStruct(map[string]any{FieldCandidates: list})
}

func DecodeCandidates(s *structpb.Struct) ([]models.Candidate, error) {
	v, ok := s.GetFields()[FieldCandidates]
	if !ok {
		return nil, nil
	}
	list := v.GetListValue()
	if list == nil {
		return nil, fmt.Errorf("%w: %s is not a list", common.ErrorValidation, FieldCandidates)
	}

	out := make([]models.Candidate, 0, len(list.GetValues()))
	for i, item := range list.GetValues() {
		st := item.GetStructValue()
		if st == nil {
			return nil, fmt.Errorf("%w: candidates[%d] is not an object", common.ErrorValidation, i)
		}
		c, err := DecodeCandidate(st)
		if err != nil {
			return nil, fmt.Errorf("candidates[%d]: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func EncodeJob(j models.Job) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		FieldID:     formatID(j.ID),
		FieldTitle:  j.Title,
		FieldStatus: j.Status,
	})
}

func DecodeJob(s *structpb.Struct) (models.Job, error) {
	id, err := int64Field(s, FieldID)
	if err != nil {
		return models.Job{}, err
	}
	return models.Job{ID: id, Title: stringField(s, FieldTitle), Status: stringField(s, FieldStatus)}, nil
}

func EncodeNewCandidate(n models.NewCandidate) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		FieldJobID:       formatID(n.JobID),
		FieldName:        n.Name,
		FieldEmail:       n.Email,
		FieldLinkedinURL: n.LinkedinURL,
	})
}

func DecodeNewCandidate(s *structpb.Struct) (models.NewCandidate, error) {
	jobID, err := int64Field(s, FieldJobID)
	if err != nil {
		return models.NewCandidate{}, err
	}
	return models.NewCandidate{
		JobID:       jobID,
		Name:        stringField(s, FieldName),
		Email:       stringField(s, FieldEmail),
		LinkedinURL: stringField(s, FieldLinkedinURL),
	}, nil
}

// EncodeDetails builds an update-details request for candidate id. All four
// fields are always present: the receiver overwrites, it does not merge.
func EncodeDetails(id int64, d models.CandidateDetails) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		FieldID:          formatID(id),
		FieldName:        d.Name,
		FieldEmail:       d.Email,
		FieldLinkedinURL: d.LinkedinURL,
		FieldNotes:       d.Notes,
	})
}

func DecodeDetails(s *structpb.Struct) (int64, models.CandidateDetails, error) {
	id, err := int64Field(s, FieldID)
	if err != nil {
		return 0, models.CandidateDetails{}, err
	}
	return id, models.CandidateDetails{
		Name:        stringField(s, FieldName),
		Email:       stringField(s, FieldEmail),
		LinkedinURL: stringField(s, FieldLinkedinURL),
		Notes:       stringField(s, FieldNotes),
	}, nil
}

func EncodeStatus(id int64, stage models.Stage) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{FieldID: formatID(id), FieldStatus: string(stage)})
}

func DecodeStatus(s *structpb.Struct) (int64, models.Stage, error) {
	id, err := int64Field(s, FieldID)
	if err != nil {
		return 0, "", err
	}
	stage := models.Stage(stringField(s, FieldStatus))
	if !stage.Valid() {
		return 0, "", fmt.Errorf("%w: %q", common.ErrInvalidStage, stage)
	}
	return id, stage, nil
}

func EncodeResume(id int64, url string) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{FieldID: formatID(id), FieldCVURL: url})
}

func DecodeResume(s *structpb.Struct) (int64, string, error) {
	id, err := int64Field(s, FieldID)
	if err != nil {
		return 0, "", err
	}
	return id, stringField(s, FieldCVURL), nil
}

// UploadRequest asks the server where to put a file.
type UploadRequest struct {
	ScopeID     string
	FileName    string
	ContentType string
}

func EncodeUploadRequest(r UploadRequest) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		FieldScopeID:     r.ScopeID,
		FieldFileName:    r.FileName,
		FieldContentType: r.ContentType,
	})
}

func DecodeUploadRequest(s *structpb.Struct) (UploadRequest, error) {
	r := UploadRequest{
		ScopeID:     stringField(s, FieldScopeID),
		FileName:    stringField(s, FieldFileName),
		ContentType: stringField(s, FieldContentType),
	}
	if r.ScopeID == "" || r.FileName == "" {
		return r, fmt.Errorf("%w: scope_id and file_name are required", common.ErrorValidation)
	}
	return r, nil
}

func EncodeUploadTicket(t models.UploadTicket) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		FieldKey:       t.Key,
		FieldUploadURL: t.UploadURL,
		FieldPublicURL: t.PublicURL,
	})
}

func DecodeUploadTicket(s *structpb.Struct) (models.UploadTicket, error) {
	t := models.UploadTicket{
		Key:       stringField(s, FieldKey),
		UploadURL: stringField(s, FieldUploadURL),
		PublicURL: stringField(s, FieldPublicURL),
	}
	if t.UploadURL == "" || t.PublicURL == "" {
		return t, fmt.Errorf("%w: upload ticket without urls", common.ErrorValidation)
	}
	return t, nil
}

func stringField(s *structpb.Struct, key string) string {
	return s.GetFields()[key].GetStringValue()
}

// int64Field reads an id. Decimal strings are the normal form; plain numbers
// are accepted for hand-written requests.
func int64Field(s *structpb.Struct, key string) (int64, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", common.ErrorValidation, key)
	}

	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		n, err := strconv.ParseInt(k.StringValue, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", common.ErrorValidation, key, err)
		}
		if n < 0 {
			return 0, fmt.Errorf("%w: %s is negative", common.ErrorValidation, key)
		}
		return n, nil
	case *structpb.Value_NumberValue:
		f := k.NumberValue
		// 2^63 is the first float64 past MaxInt64
		if f != math.Trunc(f) || f < 0 || f >= math.MaxInt64 {
			return 0, fmt.Errorf("%w: %s is not a valid id: %v", common.ErrorValidation, key, f)
		}
		return int64(f), nil
	default:
		return 0, fmt.Errorf("%w: %s has unexpected type", common.ErrorValidation, key)
	}
}
