package renderer

// =============================================================
//
//	Shaders
//
// =============================================================

// Program is a vertex/fragment source pair. Programs hold no GL state and are
// shared by every material that uses them; backends compile them lazily.
type Program struct {
	Name           string
	vertexSource   string
	fragmentSource string
}

func (p *Program) VertexSource() string   { return p.vertexSource }
func (p *Program) FragmentSource() string { return p.fragmentSource }

var meshVertexShaderSource = `#version 410 core

layout(location = 0) in vec3 inPosition; // Vertex position
layout(location = 1) in vec2 inTexCoord; // Texture Coordinate
layout(location = 2) in vec3 inNormal;   // Vertex normal

uniform mat4 model;
uniform mat4 viewProjection;

out vec2 fragTexCoord;
out vec3 Normal;
out vec3 FragPos;

void main() {
    FragPos = vec3(model * vec4(inPosition, 1.0));
    Normal = mat3(transpose(inverse(model))) * inNormal;
    fragTexCoord = inTexCoord;
    gl_Position = viewProjection * vec4(FragPos, 1.0);
}
` + "\x00"

var standardFragmentShaderSource = `#version 410 core
#define MAX_DIRECTIONAL 4

in vec2 fragTexCoord;
in vec3 Normal;
in vec3 FragPos;

uniform sampler2D textureSampler;
uniform bool hasTexture;

uniform vec3 baseColor;
uniform vec3 emissive;
uniform float emissiveIntensity;
uniform float roughness;
uniform float metalness;
uniform float opacity;

uniform vec3 ambientColor;
uniform int directionalCount;
uniform vec3 lightDirections[MAX_DIRECTIONAL];
uniform vec3 lightColors[MAX_DIRECTIONAL];
uniform vec3 viewPos;

out vec4 FragColor;

void main() {
    vec3 albedo = baseColor;
    if (hasTexture) {
        albedo *= texture(textureSampler, fragTexCoord).rgb;
    }

    vec3 norm = normalize(Normal);
    vec3 viewDir = normalize(viewPos - FragPos);
    float shininess = mix(64.0, 4.0, roughness);

    vec3 diffuse = ambientColor;
    vec3 specular = vec3(0.0);
    for (int i = 0; i < directionalCount; i++) {
        vec3 lightDir = normalize(-lightDirections[i]);
        diffuse += max(dot(norm, lightDir), 0.0) * lightColors[i];

        vec3 halfway = normalize(lightDir + viewDir);
        float spec = pow(max(dot(norm, halfway), 0.0), shininess);
        specular += spec * (1.0 - roughness) * 0.25 * lightColors[i];
    }

    vec3 specTint = mix(vec3(1.0), albedo, metalness);
    vec3 color = albedo * diffuse * (1.0 - metalness) + specular * specTint + emissive * emissiveIntensity;
    FragColor = vec4(color, opacity);
}
` + "\x00"

// Horizontal stripes across the planet body.
var bandFragmentShaderSource = `#version 410 core

in vec2 fragTexCoord;

uniform vec3 color1;
uniform vec3 color2;
uniform float frequency;
uniform float alpha;
uniform float opacity;

out vec4 FragColor;

void main() {
    float bands = sin(fragTexCoord.y * frequency) * 0.5 + 0.5;
    FragColor = vec4(mix(color1, color2, bands), alpha * opacity);
}
` + "\x00"

var ringFragmentShaderSource = `#version 410 core

in vec2 fragTexCoord;

uniform vec3 color1;
uniform vec3 color2;
uniform float frequency;
uniform float alpha;
uniform float opacity;

out vec4 FragColor;

void main() {
    float ringPattern = smoothstep(0.2, 0.8, sin(fragTexCoord.x * frequency) * 0.5 + 0.5);
    FragColor = vec4(mix(color1, color2, ringPattern), alpha * opacity);
}
` + "\x00"

var (
	StandardProgram = &Program{Name: "standard", vertexSource: meshVertexShaderSource, fragmentSource: standardFragmentShaderSource}
	BandProgram     = &Program{Name: "band", vertexSource: meshVertexShaderSource, fragmentSource: bandFragmentShaderSource}
	RingProgram     = &Program{Name: "ring", vertexSource: meshVertexShaderSource, fragmentSource: ringFragmentShaderSource}
)
