package gpu

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// CompileShaderToSPIRV compiles WGSL source to a SPIR-V uint32 slice,
// for backends that consume SPIR-V instead of WGSL.
func CompileShaderToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	return spirvCode, nil
}

// CreateShaderModuleSPIRV compiles the brush shader through naga and
// creates the module from SPIR-V. Useful on backends whose WGSL
// frontend lags behind the features the shader uses.
func CreateShaderModuleSPIRV(device hal.Device, label, wgslSource string) (hal.ShaderModule, error) {
	spirvCode, err := CompileShaderToSPIRV(wgslSource)
	if err != nil {
		return nil, err
	}
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: label,
		Source: hal.ShaderSource{
			SPIRV: spirvCode,
		},
	})
}
