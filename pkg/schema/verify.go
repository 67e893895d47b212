// Package schema provides structural verification of binary comconfig
// buffers before any field-level access.
//
// The FlatBuffers Go runtime, unlike the C++ one, ships no generated
// verifier; accessors assume a well-formed buffer and would otherwise read
// out of bounds. Verify walks the whole buffer against the comconfig schema
// (schema/comconfig.fbs): file identifier, root table, every vtable, every
// table, string and vector offset, every inline scalar with its byte width,
// and the fields the schema marks required.
// Only a buffer that passes Verify may be handed to the fb accessors.
package schema

import (
	"encoding/binary"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/lola-ipc/comcfg/pkg/cfgerrors"
	"github.com/lola-ipc/comcfg/pkg/schema/fb"
)

// FileIdentifier is the 4-byte magic every comconfig buffer carries at
// offset 4, matching the file_identifier of schema/comconfig.fbs.
const FileIdentifier = "MWCF"

const (
	// Nesting and table-count limits, same spirit as the C++
	// flatbuffers::Verifier defaults. A legitimate comconfig buffer nests
	// four levels deep; anything approaching these limits is corrupt.
	maxVerifyDepth  = 64
	maxVerifyTables = 1 << 20

	sizeSOffset          = 4
	sizeVOffset          = 2
	sizeUOffset          = 4
	fileIdentifierLength = 4
)

// Verify checks that buf is a structurally valid ComConfiguration buffer.
// It must run to completion before any accessor reads a field.
func Verify(buf []byte) error {
	v := &verifier{buf: buf}
	return v.verifyBuffer()
}

// VerifiedRoot verifies buf and returns the typed root on success. The
// returned root borrows buf; it must not outlive the mapping backing it.
func VerifiedRoot(buf []byte) (*fb.ComConfiguration, error) {
	if err := Verify(buf); err != nil {
		return nil, err
	}
	return fb.GetRootAsComConfiguration(buf, 0), nil
}

type verifier struct {
	buf       []byte
	depth     int
	numTables int
}

func (v *verifier) errAt(pos uint64, msg string) error {
	return cfgerrors.New(cfgerrors.ErrorTypeSchema, msg).WithDetail("offset", pos)
}

// inBounds reports whether [pos, pos+length) lies inside the buffer,
// guarding against overflow of the sum.
func (v *verifier) inBounds(pos, length uint64) bool {
	end := pos + length
	return end >= pos && end <= uint64(len(v.buf))
}

func (v *verifier) readUint16(pos uint64) uint16 {
	return binary.LittleEndian.Uint16(v.buf[pos:])
}

func (v *verifier) readUint32(pos uint64) uint32 {
	return binary.LittleEndian.Uint32(v.buf[pos:])
}

func (v *verifier) verifyBuffer() error {
	if !v.inBounds(0, sizeUOffset+fileIdentifierLength) {
		return v.errAt(0, "buffer too small for root offset and file identifier")
	}
	if !flatbuffers.BufferHasIdentifier(v.buf, FileIdentifier) {
		return v.errAt(sizeUOffset, "missing or wrong file identifier, expected \""+FileIdentifier+"\"")
	}

	root := uint64(v.readUint32(0))
	return v.verifyComConfiguration(root)
}

// verifyTable validates the vtable of the table at pos and returns the
// vtable position and sizes. Every table check starts here.
func (v *verifier) verifyTable(pos uint64) (vtable uint64, vtableSize, objectSize uint16, err error) {
	v.numTables++
	if v.numTables > maxVerifyTables {
		return 0, 0, 0, v.errAt(pos, "too many tables")
	}

	if !v.inBounds(pos, sizeSOffset) {
		return 0, 0, 0, v.errAt(pos, "table position out of bounds")
	}
	// The soffset at the table position points back to the vtable and may
	// be negative.
	soffset := int64(int32(v.readUint32(pos)))
	vtablePos := int64(pos) - soffset
	if vtablePos < 0 || !v.inBounds(uint64(vtablePos), 2*sizeVOffset) {
		return 0, 0, 0, v.errAt(pos, "vtable position out of bounds")
	}

	vtSize := v.readUint16(uint64(vtablePos))
	objSize := v.readUint16(uint64(vtablePos) + sizeVOffset)
	if vtSize < 2*sizeVOffset || vtSize%sizeVOffset != 0 {
		return 0, 0, 0, v.errAt(uint64(vtablePos), "malformed vtable size")
	}
	if !v.inBounds(uint64(vtablePos), uint64(vtSize)) {
		return 0, 0, 0, v.errAt(uint64(vtablePos), "vtable out of bounds")
	}
	if !v.inBounds(pos, uint64(objSize)) {
		return 0, 0, 0, v.errAt(pos, "table body out of bounds")
	}

	// Every present field must live inside the table body.
	for slot := uint64(2 * sizeVOffset); slot < uint64(vtSize); slot += sizeVOffset {
		fieldOff := v.readUint16(uint64(vtablePos) + slot)
		if fieldOff != 0 && fieldOff >= objSize {
			return 0, 0, 0, v.errAt(uint64(vtablePos)+slot, "field offset outside table body")
		}
	}

	return uint64(vtablePos), vtSize, objSize, nil
}

// fieldPos resolves the position of a field in the table at tablePos, given
// the field's vtable slot offset (4, 6, 8, ...). A zero return means the
// field is absent.
func (v *verifier) fieldPos(tablePos, vtable uint64, vtableSize uint16, slot uint16) uint64 {
	if uint64(slot)+sizeVOffset > uint64(vtableSize) {
		return 0
	}
	fieldOff := v.readUint16(vtable + uint64(slot))
	if fieldOff == 0 {
		return 0
	}
	return tablePos + uint64(fieldOff)
}

func (v *verifier) verifyScalar(fieldPos, size uint64, what string) error {
	if !v.inBounds(fieldPos, size) {
		return v.errAt(fieldPos, what+" out of bounds")
	}
	return nil
}

// scalarSlot names an inline scalar field: its vtable slot and byte width.
type scalarSlot struct {
	slot uint16
	size uint64
	name string
}

// verifyScalarFields checks every present scalar in full. The vtable walk
// only proves a field starts inside the table body; a multi-byte scalar
// declared near the end of a body that abuts the end of the buffer would
// still read past it, so each field is re-checked with its width.
func (v *verifier) verifyScalarFields(tablePos, vtable uint64, vtableSize uint16, scalars []scalarSlot) error {
	for _, s := range scalars {
		fieldPos := v.fieldPos(tablePos, vtable, vtableSize, s.slot)
		if fieldPos == 0 {
			continue
		}
		if err := v.verifyScalar(fieldPos, s.size, s.name); err != nil {
			return err
		}
	}
	return nil
}

// verifyString checks the length-prefixed, null-terminated byte payload the
// uoffset at fieldPos points to.
func (v *verifier) verifyString(fieldPos uint64, what string) error {
	if !v.inBounds(fieldPos, sizeUOffset) {
		return v.errAt(fieldPos, what+" offset out of bounds")
	}
	strPos := fieldPos + uint64(v.readUint32(fieldPos))
	if strPos < fieldPos || !v.inBounds(strPos, sizeUOffset) {
		return v.errAt(fieldPos, what+" points out of bounds")
	}
	strLen := uint64(v.readUint32(strPos))
	if !v.inBounds(strPos+sizeUOffset, strLen+1) {
		return v.errAt(strPos, what+" payload out of bounds")
	}
	if v.buf[strPos+sizeUOffset+strLen] != 0 {
		return v.errAt(strPos, what+" missing null terminator")
	}
	return nil
}

// verifyVectorHeader checks the length prefix of the vector the uoffset at
// fieldPos points to and returns the position of its first element and the
// element count.
func (v *verifier) verifyVectorHeader(fieldPos, elemSize uint64, what string) (elems uint64, count uint64, err error) {
	if !v.inBounds(fieldPos, sizeUOffset) {
		return 0, 0, v.errAt(fieldPos, what+" offset out of bounds")
	}
	vecPos := fieldPos + uint64(v.readUint32(fieldPos))
	if vecPos < fieldPos || !v.inBounds(vecPos, sizeUOffset) {
		return 0, 0, v.errAt(fieldPos, what+" points out of bounds")
	}
	count = uint64(v.readUint32(vecPos))
	elems = vecPos + sizeUOffset
	if count > uint64(len(v.buf))/elemSize || !v.inBounds(elems, count*elemSize) {
		return 0, 0, v.errAt(vecPos, what+" elements out of bounds")
	}
	return elems, count, nil
}

// verifyTableVector walks a vector of table offsets, applying verifyElem to
// each referenced table.
func (v *verifier) verifyTableVector(fieldPos uint64, what string, verifyElem func(pos uint64) error) error {
	elems, count, err := v.verifyVectorHeader(fieldPos, sizeUOffset, what)
	if err != nil {
		return err
	}

	v.depth++
	if v.depth > maxVerifyDepth {
		return v.errAt(fieldPos, "nesting too deep")
	}
	defer func() { v.depth-- }()

	for i := uint64(0); i < count; i++ {
		elemPos := elems + i*sizeUOffset
		tablePos := elemPos + uint64(v.readUint32(elemPos))
		if tablePos < elemPos {
			return v.errAt(elemPos, what+" element offset overflows")
		}
		if err := verifyElem(tablePos); err != nil {
			return err
		}
	}
	return nil
}

// verifySubTable verifies the table the uoffset at fieldPos points to.
func (v *verifier) verifySubTable(fieldPos uint64, what string, verifyFn func(pos uint64) error) error {
	if !v.inBounds(fieldPos, sizeUOffset) {
		return v.errAt(fieldPos, what+" offset out of bounds")
	}
	tablePos := fieldPos + uint64(v.readUint32(fieldPos))
	if tablePos < fieldPos {
		return v.errAt(fieldPos, what+" offset overflows")
	}

	v.depth++
	if v.depth > maxVerifyDepth {
		return v.errAt(fieldPos, "nesting too deep")
	}
	defer func() { v.depth-- }()

	return verifyFn(tablePos)
}

// Per-table verification, one function per schema table, field slots in
// vtable order.

var (
	bindingScalars = []scalarSlot{
		{slot: 4, size: 1, name: "binding"},
		{slot: 6, size: 2, name: "service_id"},
	}
	instanceScalars = []scalarSlot{
		{slot: 4, size: 1, name: "binding"},
		{slot: 6, size: 2, name: "instance_id"},
		{slot: 8, size: 1, name: "asil_level"},
		{slot: 20, size: 1, name: "permission_checks"},
		{slot: 22, size: 8, name: "shm_size"},
		{slot: 24, size: 8, name: "control_asil_b_shm_size"},
		{slot: 26, size: 8, name: "control_qm_shm_size"},
	}
	eventInstanceScalars = []scalarSlot{
		{slot: 6, size: 2, name: "number_of_sample_slots"},
		{slot: 8, size: 2, name: "max_subscribers"},
		{slot: 10, size: 1, name: "enforce_max_samples"},
		{slot: 12, size: 2, name: "number_of_ipc_tracing_slots"},
	}
	methodInstanceScalars = []scalarSlot{
		{slot: 6, size: 2, name: "queue_size"},
	}
	globalScalars = []scalarSlot{
		{slot: 4, size: 1, name: "asil_level"},
		{slot: 6, size: 2, name: "application_id"},
		{slot: 10, size: 1, name: "shm_size_calc_mode"},
	}
	queueSizeScalars = []scalarSlot{
		{slot: 4, size: 4, name: "qm_receiver"},
		{slot: 6, size: 4, name: "b_receiver"},
		{slot: 8, size: 4, name: "b_sender"},
	}
	tracingScalars = []scalarSlot{
		{slot: 4, size: 1, name: "enable"},
	}
)

func (v *verifier) verifyComConfiguration(pos uint64) error {
	vtable, vtSize, _, err := v.verifyTable(pos)
	if err != nil {
		return err
	}

	serviceTypes := v.fieldPos(pos, vtable, vtSize, 4)
	if serviceTypes == 0 {
		return v.errAt(pos, "required field service_types is missing")
	}
	if err := v.verifyTableVector(serviceTypes, "service_types", v.verifyServiceType); err != nil {
		return err
	}

	serviceInstances := v.fieldPos(pos, vtable, vtSize, 6)
	if serviceInstances == 0 {
		return v.errAt(pos, "required field service_instances is missing")
	}
	if err := v.verifyTableVector(serviceInstances, "service_instances", v.verifyServiceInstance); err != nil {
		return err
	}

	if global := v.fieldPos(pos, vtable, vtSize, 8); global != 0 {
		if err := v.verifySubTable(global, "global", v.verifyGlobal); err != nil {
			return err
		}
	}
	if tracing := v.fieldPos(pos, vtable, vtSize, 10); tracing != 0 {
		if err := v.verifySubTable(tracing, "tracing", v.verifyTracing); err != nil {
			return err
		}
	}
	return nil
}

func (v *verifier) verifyServiceType(pos uint64) error {
	vtable, vtSize, _, err := v.verifyTable(pos)
	if err != nil {
		return err
	}

	name := v.fieldPos(pos, vtable, vtSize, 4)
	if name == 0 {
		return v.errAt(pos, "required field service_type_name is missing")
	}
	if err := v.verifyString(name, "service_type_name"); err != nil {
		return err
	}

	version := v.fieldPos(pos, vtable, vtSize, 6)
	if version == 0 {
		return v.errAt(pos, "required field version is missing")
	}
	if err := v.verifyScalar(version, 8, "version"); err != nil {
		return err
	}

	bindings := v.fieldPos(pos, vtable, vtSize, 8)
	if bindings == 0 {
		return v.errAt(pos, "required field bindings is missing")
	}
	return v.verifyTableVector(bindings, "bindings", v.verifyBinding)
}

func (v *verifier) verifyBinding(pos uint64) error {
	vtable, vtSize, _, err := v.verifyTable(pos)
	if err != nil {
		return err
	}
	if err := v.verifyScalarFields(pos, vtable, vtSize, bindingScalars); err != nil {
		return err
	}

	if events := v.fieldPos(pos, vtable, vtSize, 8); events != 0 {
		if err := v.verifyTableVector(events, "events", v.verifyNamedID("event_name", "event_id")); err != nil {
			return err
		}
	}
	if fields := v.fieldPos(pos, vtable, vtSize, 10); fields != 0 {
		if err := v.verifyTableVector(fields, "fields", v.verifyNamedID("field_name", "field_id")); err != nil {
			return err
		}
	}
	if methods := v.fieldPos(pos, vtable, vtSize, 12); methods != 0 {
		if err := v.verifyTableVector(methods, "methods", v.verifyNamedID("method_name", "method_id")); err != nil {
			return err
		}
	}
	return nil
}

// verifyNamedID covers the Event, Field and Method tables, which share one
// shape: a required name string in slot 4 and a uint16 id in slot 6.
func (v *verifier) verifyNamedID(nameField, idField string) func(pos uint64) error {
	return func(pos uint64) error {
		vtable, vtSize, _, err := v.verifyTable(pos)
		if err != nil {
			return err
		}
		name := v.fieldPos(pos, vtable, vtSize, 4)
		if name == 0 {
			return v.errAt(pos, "required field "+nameField+" is missing")
		}
		if err := v.verifyString(name, nameField); err != nil {
			return err
		}
		return v.verifyScalarFields(pos, vtable, vtSize, []scalarSlot{{slot: 6, size: 2, name: idField}})
	}
}

func (v *verifier) verifyServiceInstance(pos uint64) error {
	vtable, vtSize, _, err := v.verifyTable(pos)
	if err != nil {
		return err
	}

	specifier := v.fieldPos(pos, vtable, vtSize, 4)
	if specifier == 0 {
		return v.errAt(pos, "required field instance_specifier is missing")
	}
	if err := v.verifyString(specifier, "instance_specifier"); err != nil {
		return err
	}

	name := v.fieldPos(pos, vtable, vtSize, 6)
	if name == 0 {
		return v.errAt(pos, "required field service_type_name is missing")
	}
	if err := v.verifyString(name, "service_type_name"); err != nil {
		return err
	}

	version := v.fieldPos(pos, vtable, vtSize, 8)
	if version == 0 {
		return v.errAt(pos, "required field version is missing")
	}
	if err := v.verifyScalar(version, 8, "version"); err != nil {
		return err
	}

	instances := v.fieldPos(pos, vtable, vtSize, 10)
	if instances == 0 {
		return v.errAt(pos, "required field instances is missing")
	}
	return v.verifyTableVector(instances, "instances", v.verifyInstance)
}

func (v *verifier) verifyInstance(pos uint64) error {
	vtable, vtSize, _, err := v.verifyTable(pos)
	if err != nil {
		return err
	}
	if err := v.verifyScalarFields(pos, vtable, vtSize, instanceScalars); err != nil {
		return err
	}

	if events := v.fieldPos(pos, vtable, vtSize, 10); events != 0 {
		if err := v.verifyTableVector(events, "events", v.verifyNamedDeployment("event_name", eventInstanceScalars)); err != nil {
			return err
		}
	}
	if fields := v.fieldPos(pos, vtable, vtSize, 12); fields != 0 {
		if err := v.verifyTableVector(fields, "fields", v.verifyNamedDeployment("field_name", eventInstanceScalars)); err != nil {
			return err
		}
	}
	if methods := v.fieldPos(pos, vtable, vtSize, 14); methods != 0 {
		if err := v.verifyTableVector(methods, "methods", v.verifyNamedDeployment("method_name", methodInstanceScalars)); err != nil {
			return err
		}
	}
	if consumer := v.fieldPos(pos, vtable, vtSize, 16); consumer != 0 {
		if err := v.verifySubTable(consumer, "allowed_consumer", v.verifyPermissions); err != nil {
			return err
		}
	}
	if provider := v.fieldPos(pos, vtable, vtSize, 18); provider != 0 {
		if err := v.verifySubTable(provider, "allowed_provider", v.verifyPermissions); err != nil {
			return err
		}
	}
	return nil
}

// verifyNamedDeployment covers EventInstance, FieldInstance and
// MethodInstance: a required name string in slot 4 plus the table's inline
// scalars.
func (v *verifier) verifyNamedDeployment(nameField string, scalars []scalarSlot) func(pos uint64) error {
	return func(pos uint64) error {
		vtable, vtSize, _, err := v.verifyTable(pos)
		if err != nil {
			return err
		}
		name := v.fieldPos(pos, vtable, vtSize, 4)
		if name == 0 {
			return v.errAt(pos, "required field "+nameField+" is missing")
		}
		if err := v.verifyString(name, nameField); err != nil {
			return err
		}
		return v.verifyScalarFields(pos, vtable, vtSize, scalars)
	}
}

func (v *verifier) verifyPermissions(pos uint64) error {
	vtable, vtSize, _, err := v.verifyTable(pos)
	if err != nil {
		return err
	}

	if qm := v.fieldPos(pos, vtable, vtSize, 4); qm != 0 {
		if _, _, err := v.verifyVectorHeader(qm, 4, "qm"); err != nil {
			return err
		}
	}
	if b := v.fieldPos(pos, vtable, vtSize, 6); b != 0 {
		if _, _, err := v.verifyVectorHeader(b, 4, "b"); err != nil {
			return err
		}
	}
	return nil
}

func (v *verifier) verifyGlobal(pos uint64) error {
	vtable, vtSize, _, err := v.verifyTable(pos)
	if err != nil {
		return err
	}
	if err := v.verifyScalarFields(pos, vtable, vtSize, globalScalars); err != nil {
		return err
	}

	if queueSize := v.fieldPos(pos, vtable, vtSize, 8); queueSize != 0 {
		return v.verifySubTable(queueSize, "queue_size", v.verifyQueueSize)
	}
	return nil
}

func (v *verifier) verifyQueueSize(pos uint64) error {
	vtable, vtSize, _, err := v.verifyTable(pos)
	if err != nil {
		return err
	}
	return v.verifyScalarFields(pos, vtable, vtSize, queueSizeScalars)
}

func (v *verifier) verifyTracing(pos uint64) error {
	vtable, vtSize, _, err := v.verifyTable(pos)
	if err != nil {
		return err
	}
	if err := v.verifyScalarFields(pos, vtable, vtSize, tracingScalars); err != nil {
		return err
	}

	id := v.fieldPos(pos, vtable, vtSize, 6)
	if id == 0 {
		return v.errAt(pos, "required field application_instance_id is missing")
	}
	if err := v.verifyString(id, "application_instance_id"); err != nil {
		return err
	}

	if path := v.fieldPos(pos, vtable, vtSize, 8); path != 0 {
		return v.verifyString(path, "trace_filter_config_path")
	}
	return nil
}
