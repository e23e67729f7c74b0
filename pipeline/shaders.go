// Package pipeline implements the fixed-function-to-programmable
// pipeline emulator: static HLSL-equivalent shaders compiled once,
// input-layout synthesis and caching from vertex-format (FVF) bits,
// constant-buffer packing, and the prepare_draw finalization sequence.
package pipeline

// vertexShaderSource is the static vertex shader every draw uses. It
// reads position, an optional normal, an optional diffuse color (BGRA
// byte order) and an optional texcoord0, and either passes a
// pre-transformed position through (screen-space remap) or transforms
// it by the world-view-projection matrix.
const vertexShaderSource = `
cbuffer VSConstants : register(b0) {
    float4x4 wvp;
    float2   screenSize;
    uint     flags; // bit0: pre-transformed, bit1: has-diffuse, bit2: has-texcoord0
};

struct VSInput {
    float4 position : POSITION0;
    float3 normal   : NORMAL0;
    float4 diffuse  : COLOR0;
    float2 texcoord : TEXCOORD0;
};

struct VSOutput {
    float4 position : SV_POSITION;
    float4 color    : COLOR0;
    float2 texcoord : TEXCOORD0;
};

VSOutput main(VSInput input) {
    VSOutput o;
    if ((flags & 1u) != 0u) {
        o.position.xy = (input.position.xy / screenSize) * float2(2.0, -2.0) + float2(-1.0, 1.0);
        o.position.z = input.position.z;
        o.position.w = 1.0;
    } else {
        o.position = mul(float4(input.position.xyz, 1.0), wvp);
    }
    o.color = ((flags & 2u) != 0u) ? input.diffuse : float4(1, 1, 1, 1);
    o.texcoord = input.texcoord;
    return o;
}
`

// pixelShaderSource is the static pixel shader every draw uses. It
// optionally samples and modulates texture 0 with the interpolated
// color, and optionally performs an alpha test against alphaRef using
// alphaFunc.
const pixelShaderSource = `
cbuffer PSConstants : register(b0) {
    float4 textureFactor;
    float  alphaRef;
    uint   flags; // bit0: sample texture 0, bit1: alpha test enabled
    uint   alphaFunc; // 1..8: NEVER..ALWAYS
};

Texture2D tex0 : register(t0);
SamplerState samp0 : register(s0);

struct PSInput {
    float4 position : SV_POSITION;
    float4 color    : COLOR0;
    float2 texcoord : TEXCOORD0;
};

bool alphaTestPasses(float a) {
    switch (alphaFunc) {
    case 1: return false;
    case 2: return a < alphaRef;
    case 3: return a == alphaRef;
    case 4: return a <= alphaRef;
    case 5: return a > alphaRef;
    case 6: return a != alphaRef;
    case 7: return a >= alphaRef;
    default: return true;
    }
}

float4 main(PSInput input) : SV_TARGET {
    float4 color = input.color;
    if ((flags & 1u) != 0u) {
        color *= tex0.Sample(samp0, input.texcoord);
    }
    if ((flags & 2u) != 0u && !alphaTestPasses(color.a)) {
        discard;
    }
    return color;
}
`
