package reeve

import (
	"context"
	"fmt"
	"strconv"
)

// FaceService handles face enrollment, recognition and verification.
type FaceService struct {
	client *Client
}

// List returns the faces enrolled for a person.
func (s *FaceService) List(ctx context.Context, personID int) (*APIResponse, error) {
	return s.client.Get(ctx, fmt.Sprintf("/Person/face/list/%d", personID), nil)
}

// Add enrolls a JPEG face image for a person.
func (s *FaceService) Add(ctx context.Context, personID int, face []byte) (*APIResponse, error) {
	form := NewForm()
	form.AddField("personId", strconv.Itoa(personID))
	form.AddFile("face", "face.jpg", "image/jpeg", face)
	return s.client.PostForm(ctx, "/Person/face/add", form)
}

// Delete removes a face by id.
func (s *FaceService) Delete(ctx context.Context, faceID int) (*APIResponse, error) {
	return s.client.Post(ctx, fmt.Sprintf("/Person/face/delete/%d", faceID), nil)
}

// Recognize matches a face image against all enrolled persons. The API
// returns a ranked candidate list; the envelope is reshaped so Result
// holds only the best match, or nil when nothing matched. Lower-ranked
// candidates are discarded.
func (s *FaceService) Recognize(ctx context.Context, face []byte) (*APIResponse, error) {
	form := NewForm()
	form.AddFile("face", "face.jpg", "image/jpeg", face)

	resp, err := s.client.PostForm(ctx, "/Person/face/recognize", form)
	if err != nil {
		return nil, err
	}

	if list, ok := resp.Result.([]any); ok && len(list) > 0 {
		resp.Result = list[0]
	} else {
		resp.Result = nil
	}
	if resp.Raw != nil {
		resp.Raw["result"] = resp.Result
	}
	return resp, nil
}

// Verify checks a face image against one specific person. The envelope
// is returned unmodified.
func (s *FaceService) Verify(ctx context.Context, face []byte, personID int) (*APIResponse, error) {
	form := NewForm()
	form.AddField("personId", strconv.Itoa(personID))
	form.AddFile("face", "face.jpg", "image/jpeg", face)
	return s.client.PostForm(ctx, "/Person/face/verification", form)
}
