package renderer

import (
	"Moonrise/internal/logger"
	"errors"
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// EXT_texture_filter_anisotropic, core only from 4.6.
const (
	textureMaxAnisotropy    = 0x84FE
	maxTextureMaxAnisotropy = 0x84FF
)

var _ Backend = (*OpenGLRenderer)(nil)

type glProgram struct {
	handle   uint32
	uniforms *UniformCache
}

type OpenGLRenderer struct {
	programs             map[*Program]*glProgram
	width, height        int32
	pixelRatio           float32
	maxAnisotropy        float32
	currentShaderProgram uint32 // Track currently bound shader to avoid unnecessary switches
	currentTextureID     uint32
	initialized          bool
}

func NewOpenGLRenderer() *OpenGLRenderer {
	return &OpenGLRenderer{programs: make(map[*Program]*glProgram)}
}

// Init must run with the target context current.
func (rend *OpenGLRenderer) Init(width, height int32, pixelRatio float32) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("opengl init: %w", err)
	}

	if Debug {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}

	gl.GetFloatv(maxTextureMaxAnisotropy, &rend.maxAnisotropy)
	// Fully transparent clear so the host background shows through.
	gl.ClearColor(0, 0, 0, 0)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	rend.Resize(width, height, pixelRatio)

	for _, p := range []*Program{StandardProgram, BandProgram, RingProgram} {
		if _, err := rend.program(p); err != nil {
			return err
		}
	}

	rend.initialized = true
	logger.Log.Info("OpenGL render initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.Float32("maxAnisotropy", rend.maxAnisotropy))
	return nil
}

// Resize sizes the drawing buffer to the logical size times the pixel ratio.
func (rend *OpenGLRenderer) Resize(width, height int32, pixelRatio float32) {
	rend.width, rend.height = width, height
	rend.pixelRatio = ClampPixelRatio(pixelRatio)
	gl.Viewport(0, 0, int32(float32(width)*rend.pixelRatio), int32(float32(height)*rend.pixelRatio))
}

func (rend *OpenGLRenderer) program(p *Program) (*glProgram, error) {
	if compiled, ok := rend.programs[p]; ok {
		return compiled, nil
	}

	vertexShader, err := GenShader(p.vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("program %s: %w", p.Name, err)
	}
	fragmentShader, err := GenShader(p.fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return nil, fmt.Errorf("program %s: %w", p.Name, err)
	}
	handle, err := GenShaderProgram(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("program %s: %w", p.Name, err)
	}

	compiled := &glProgram{handle: handle, uniforms: NewUniformCache(handle)}
	rend.programs[p] = compiled
	logger.Log.Debug("Program compiled", zap.String("program", p.Name), zap.Uint32("handle", handle))
	return compiled, nil
}

func (rend *OpenGLRenderer) Upload(mesh *Mesh) error {
	if mesh.Uploaded {
		return nil
	}
	if mesh.Geometry == nil || len(mesh.Geometry.Vertices) == 0 {
		return errors.New("mesh has no geometry")
	}
	g := mesh.Geometry

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Vertices)*4, gl.Ptr(g.Vertices), gl.STATIC_DRAW)

	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, gl.Ptr(g.Indices), gl.STATIC_DRAW)

	stride := int32(VertexStride * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, gl.PtrOffset(5*4))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	mesh.VAO = vao
	mesh.VBO = vbo
	mesh.EBO = ebo
	mesh.Uploaded = true
	return nil
}

func (rend *OpenGLRenderer) Release(mesh *Mesh) {
	if !mesh.Uploaded {
		return
	}
	gl.DeleteVertexArrays(1, &mesh.VAO)
	gl.DeleteBuffers(1, &mesh.VBO)
	gl.DeleteBuffers(1, &mesh.EBO)
	mesh.VAO, mesh.VBO, mesh.EBO = 0, 0, 0
	mesh.Uploaded = false
}

func (rend *OpenGLRenderer) CreateTexture(img image.Image, opts TextureOptions) (uint32, error) {
	rgba := toRGBA(img)
	if rgba.Stride != rgba.Rect.Size().X*4 {
		return 0, fmt.Errorf("unsupported stride")
	}

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(rgba.Rect.Size().X), int32(rgba.Rect.Size().Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	if opts.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}
	if opts.Anisotropic && rend.maxAnisotropy > 1 {
		gl.TexParameterf(gl.TEXTURE_2D, textureMaxAnisotropy, rend.maxAnisotropy)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	rend.currentTextureID = 0
	return textureID, nil
}

func (rend *OpenGLRenderer) DeleteTexture(id uint32) {
	if id == 0 {
		return
	}
	gl.DeleteTextures(1, &id)
	if rend.currentTextureID == id {
		rend.currentTextureID = 0
	}
}

func (rend *OpenGLRenderer) Draw(frame *Frame) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)

	items := make([]DrawItem, len(frame.Items))
	copy(items, frame.Items)
	// Opaque first, then blended meshes without depth writes.
	sort.SliceStable(items, func(i, j int) bool {
		return !isBlended(items[i]) && isBlended(items[j])
	})

	blending := false
	for _, item := range items {
		if item.Mesh == nil || !item.Mesh.Uploaded || item.Mesh.Material == nil {
			continue
		}
		if isBlended(item) && !blending {
			gl.Enable(gl.BLEND)
			gl.DepthMask(false)
			blending = true
		}
		rend.drawItem(frame, item)
	}

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.DEPTH_TEST)
}

func isBlended(item DrawItem) bool {
	if item.Mesh == nil || item.Mesh.Material == nil {
		return false
	}
	return item.Mesh.Material.Transparent || item.Opacity < 1
}

func (rend *OpenGLRenderer) drawItem(frame *Frame, item DrawItem) {
	mat := item.Mesh.Material
	prog, err := rend.program(mat.Program)
	if err != nil {
		logger.Log.Error("Skipping mesh with broken program", zap.String("mesh", item.Mesh.Name), zap.Error(err))
		return
	}

	if rend.currentShaderProgram != prog.handle {
		gl.UseProgram(prog.handle)
		rend.currentShaderProgram = prog.handle
	}

	u := prog.uniforms
	u.SetMat4("viewProjection", frame.ViewProjection)
	u.SetMat4("model", item.Model)
	u.SetFloat("opacity", item.Opacity)

	switch mat.Program {
	case StandardProgram:
		rend.setStandardUniforms(u, frame, mat)
	default:
		colors := mat.Colors()
		u.SetVec3("color1", colors.A)
		u.SetVec3("color2", colors.B)
		u.SetFloat("frequency", mat.Pattern.Frequency)
		u.SetFloat("alpha", mat.Alpha)
	}

	gl.BindVertexArray(item.Mesh.VAO)
	gl.DrawElements(gl.TRIANGLES, item.Mesh.IndexCount(), gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (rend *OpenGLRenderer) setStandardUniforms(u *UniformCache, frame *Frame, mat *Material) {
	u.SetVec3("baseColor", mat.BaseColor)
	u.SetVec3("emissive", mat.Emissive)
	u.SetFloat("emissiveIntensity", mat.EmissiveIntensity)
	u.SetFloat("roughness", mat.Roughness)
	u.SetFloat("metalness", mat.Metalness)
	u.SetVec3("viewPos", frame.ViewPos)
	u.SetVec3("ambientColor", frame.Ambient.Color.Mul(frame.Ambient.Intensity))

	lights := frame.Directional
	if len(lights) > MaxDirectionalLights {
		lights = lights[:MaxDirectionalLights]
	}
	directions := make([]mgl32.Vec3, 0, len(lights))
	colors := make([]mgl32.Vec3, 0, len(lights))
	for _, l := range lights {
		directions = append(directions, l.Direction())
		colors = append(colors, l.Color.Mul(l.Intensity))
	}
	u.SetInt("directionalCount", int32(len(lights)))
	u.SetVec3Array("lightDirections", directions)
	u.SetVec3Array("lightColors", colors)

	hasTexture := mat.Texture != nil && mat.Texture.ID != 0
	u.SetBool("hasTexture", hasTexture)
	u.SetInt("textureSampler", 0)
	if hasTexture && mat.Texture.ID != rend.currentTextureID {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, mat.Texture.ID)
		rend.currentTextureID = mat.Texture.ID
	}
}

// ReadPixels returns the current back buffer as a top-down RGBA image.
func (rend *OpenGLRenderer) ReadPixels() *image.NRGBA {
	w := int(float32(rend.width) * rend.pixelRatio)
	h := int(float32(rend.height) * rend.pixelRatio)
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}

	buf := make([]uint8, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(buf))

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	row := w * 4
	for y := 0; y < h; y++ {
		// GL rows start at the bottom.
		copy(img.Pix[y*img.Stride:y*img.Stride+row], buf[(h-1-y)*row:(h-y)*row])
	}
	return img
}

func (rend *OpenGLRenderer) Cleanup() {
	for p, compiled := range rend.programs {
		gl.DeleteProgram(compiled.handle)
		delete(rend.programs, p)
	}
	rend.currentShaderProgram = 0
	rend.currentTextureID = 0
	rend.initialized = false
}

func GenShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		logger.Log.Error("Failed to compile", zap.Uint32("shaderType", shaderType), zap.String("log", log))
		return 0, fmt.Errorf("compile shader type %d: %s", shaderType, strings.TrimRight(log, "\x00"))
	}

	return shader, nil
}

func GenShaderProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DetachShader(program, vertexShader)
	gl.DeleteShader(vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		logger.Log.Error("Failed to link program", zap.String("log", log))
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(log, "\x00"))
	}
	return program, nil
}
