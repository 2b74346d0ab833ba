package reeve

import "context"

// SubjectService handles face-to-face verification.
type SubjectService struct {
	client *Client
}

// SubjectFace is one side of a subject verification: either raw JPEG
// bytes or a pre-encoded base64 string. Build it with FaceBytes or
// FaceBase64.
type SubjectFace struct {
	data    []byte
	encoded string
	base64  bool
}

// FaceBytes wraps a raw JPEG image.
func FaceBytes(data []byte) SubjectFace {
	return SubjectFace{data: data}
}

// FaceBase64 wraps a base64-encoded image string.
func FaceBase64(encoded string) SubjectFace {
	return SubjectFace{encoded: encoded, base64: true}
}

// VerifyFaces checks whether two faces belong to the same subject.
//
// The wire format is asymmetric on purpose: binary images share the one
// multipart field name "faces", while base64 strings are sent as the
// distinct text fields "face1" and "face2". The remote API requires
// exactly this layout.
func (s *SubjectService) VerifyFaces(ctx context.Context, face1, face2 SubjectFace) (*APIResponse, error) {
	form := NewForm()
	addSubjectFace(form, face1, "face1")
	addSubjectFace(form, face2, "face2")
	return s.client.PostForm(ctx, "/Subject/face/verification", form)
}

func addSubjectFace(form *Form, face SubjectFace, name string) {
	if face.base64 {
		form.AddField(name, face.encoded)
		return
	}
	form.AddFile("faces", name+".jpg", "image/jpeg", face.data)
}
