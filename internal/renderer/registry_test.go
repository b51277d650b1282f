package renderer

import (
	"errors"
	"testing"

	"capnarrative/internal/model"
	"capnarrative/internal/xhtml"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResource struct {
	kind string
}

func (f fakeResource) ResourceType() string { return f.kind }

type fakeRenderer struct {
	rendered []model.Resource
}

func (f *fakeRenderer) Render(x *xhtml.Node, res model.Resource) (bool, error) {
	f.rendered = append(f.rendered, res)
	x.Tx(res.ResourceType())
	return true, nil
}

func (f *fakeRenderer) Display(res model.Resource) (string, error) {
	return "fake " + res.ResourceType(), nil
}

func TestRegistry_RegisterAndDispatch(t *testing.T) {
	reg := NewRegistry()
	fake := &fakeRenderer{}
	require.NoError(t, reg.Register("Patient", fake))

	x := xhtml.NewFragment()
	ok, err := reg.RenderResource(x, fakeResource{kind: "Patient"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, fake.rendered, 1)
	assert.Equal(t, "Patient", x.Text())

	display, err := reg.DisplayResource(fakeResource{kind: "Patient"})
	require.NoError(t, err)
	assert.Equal(t, "fake Patient", display)
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("Patient", &fakeRenderer{}))

	err := reg.Register("Patient", &fakeRenderer{})
	assert.True(t, errors.Is(err, ErrAlreadyRegistered))
}

func TestRegistry_UnknownKind(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.RenderResource(xhtml.NewFragment(), fakeResource{kind: "Patient"})
	assert.True(t, errors.Is(err, ErrNoRenderer))

	_, err = reg.DisplayResource(fakeResource{kind: "Patient"})
	assert.True(t, errors.Is(err, ErrNoRenderer))
}

func TestDefaultRegistry(t *testing.T) {
	reg := NewDefaultRegistry(NewRenderingContext(""))
	assert.Equal(t, []string{"CapabilityStatement"}, reg.Kinds())

	x := xhtml.NewFragment()
	ok, err := reg.RenderResource(x, testServer())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Test Server", x.Children()[0].Text())

	display, err := reg.DisplayResource(testServer())
	require.NoError(t, err)
	assert.Equal(t, "Test Server", display)
}

func TestDefaultRegistry_WrongResource(t *testing.T) {
	reg := NewDefaultRegistry(NewRenderingContext(""))
	rr, ok := reg.Get(model.ResourceTypeCapabilityStatement)
	require.True(t, ok)

	_, err := rr.Render(xhtml.NewFragment(), fakeResource{kind: "CapabilityStatement"})
	assert.True(t, errors.Is(err, ErrWrongResource))

	_, err = rr.Display(fakeResource{kind: "CapabilityStatement"})
	assert.True(t, errors.Is(err, ErrWrongResource))
}
