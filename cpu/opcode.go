package cpu

import (
	"fmt"
	"iter"
)

// Direct is a direct function, held in the high nibble of an instruction byte.
type Direct int

//go:generate go tool stringer -linecomment -type=Direct
const (
	DIRECT_NONE  = Direct(-1)  // fetch
	DIRECT_J     = Direct(0x0) // j
	DIRECT_LDLP  = Direct(0x1) // ldlp
	DIRECT_PFIX  = Direct(0x2) // pfix
	DIRECT_LDNL  = Direct(0x3) // ldnl
	DIRECT_LDC   = Direct(0x4) // ldc
	DIRECT_LDNLP = Direct(0x5) // ldnlp
	DIRECT_NFIX  = Direct(0x6) // nfix
	DIRECT_LDL   = Direct(0x7) // ldl
	DIRECT_ADC   = Direct(0x8) // adc
	DIRECT_CALL  = Direct(0x9) // call
	DIRECT_CJ    = Direct(0xA) // cj
	DIRECT_AJW   = Direct(0xB) // ajw
	DIRECT_EQC   = Direct(0xC) // eqc
	DIRECT_STL   = Direct(0xD) // stl
	DIRECT_STNL  = Direct(0xE) // stnl
	DIRECT_OPR   = Direct(0xF) // opr
)

// Operation is a secondary function, selected by the operand of OPR.
type Operation int

const (
	OPERATION_TABLE_SIZE = 0xC0 // Operations at or above this are sparse.
)

const (
	OP_REV           = Operation(0x00)
	OP_LB            = Operation(0x01)
	OP_BSUB          = Operation(0x02)
	OP_ENDP          = Operation(0x03)
	OP_DIFF          = Operation(0x04)
	OP_ADD           = Operation(0x05)
	OP_GCALL         = Operation(0x06)
	OP_IN            = Operation(0x07)
	OP_PROD          = Operation(0x08)
	OP_GT            = Operation(0x09)
	OP_WSUB          = Operation(0x0A)
	OP_OUT           = Operation(0x0B)
	OP_SUB           = Operation(0x0C)
	OP_STARTP        = Operation(0x0D)
	OP_OUTBYTE       = Operation(0x0E)
	OP_OUTWORD       = Operation(0x0F)
	OP_SETERR        = Operation(0x10)
	OP_RESETCH       = Operation(0x12)
	OP_CSUB0         = Operation(0x13)
	OP_STOPP         = Operation(0x15)
	OP_LADD          = Operation(0x16)
	OP_STLB          = Operation(0x17)
	OP_STHF          = Operation(0x18)
	OP_NORM          = Operation(0x19)
	OP_LDIV          = Operation(0x1A)
	OP_LDPI          = Operation(0x1B)
	OP_STLF          = Operation(0x1C)
	OP_XDBLE         = Operation(0x1D)
	OP_LDPRI         = Operation(0x1E)
	OP_REM           = Operation(0x1F)
	OP_RET           = Operation(0x20)
	OP_LEND          = Operation(0x21)
	OP_LDTIMER       = Operation(0x22)
	OP_TESTLDS       = Operation(0x23)
	OP_TESTLDE       = Operation(0x24)
	OP_TESTLDD       = Operation(0x25)
	OP_TESTSTS       = Operation(0x26)
	OP_TESTSTE       = Operation(0x27)
	OP_TESTSTD       = Operation(0x28)
	OP_TESTERR       = Operation(0x29)
	OP_TESTPRANAL    = Operation(0x2A)
	OP_TIN           = Operation(0x2B)
	OP_DIV           = Operation(0x2C)
	OP_TESTHARDCHAN  = Operation(0x2D)
	OP_DIST          = Operation(0x2E)
	OP_DISC          = Operation(0x2F)
	OP_DISS          = Operation(0x30)
	OP_LMUL          = Operation(0x31)
	OP_NOT           = Operation(0x32)
	OP_XOR           = Operation(0x33)
	OP_BCNT          = Operation(0x34)
	OP_LSHR          = Operation(0x35)
	OP_LSHL          = Operation(0x36)
	OP_LSUM          = Operation(0x37)
	OP_LSUB          = Operation(0x38)
	OP_RUNP          = Operation(0x39)
	OP_XWORD         = Operation(0x3A)
	OP_SB            = Operation(0x3B)
	OP_GAJW          = Operation(0x3C)
	OP_SAVEL         = Operation(0x3D)
	OP_SAVEH         = Operation(0x3E)
	OP_WCNT          = Operation(0x3F)
	OP_SHR           = Operation(0x40)
	OP_SHL           = Operation(0x41)
	OP_MINT          = Operation(0x42)
	OP_ALT           = Operation(0x43)
	OP_ALTWT         = Operation(0x44)
	OP_ALTEND        = Operation(0x45)
	OP_AND           = Operation(0x46)
	OP_ENBT          = Operation(0x47)
	OP_ENBC          = Operation(0x48)
	OP_ENBS          = Operation(0x49)
	OP_MOVE          = Operation(0x4A)
	OP_OR            = Operation(0x4B)
	OP_CSNGL         = Operation(0x4C)
	OP_CCNT1         = Operation(0x4D)
	OP_TALT          = Operation(0x4E)
	OP_LDIFF         = Operation(0x4F)
	OP_STHB          = Operation(0x50)
	OP_TALTWT        = Operation(0x51)
	OP_SUM           = Operation(0x52)
	OP_MUL           = Operation(0x53)
	OP_STTIMER       = Operation(0x54)
	OP_STOPERR       = Operation(0x55)
	OP_CWORD         = Operation(0x56)
	OP_CLRHALTERR    = Operation(0x57)
	OP_SETHALTERR    = Operation(0x58)
	OP_TESTHALTERR   = Operation(0x59)
	OP_DUP           = Operation(0x5A)
	OP_MOVE2DINIT    = Operation(0x5B)
	OP_MOVE2DALL     = Operation(0x5C)
	OP_MOVE2DNONZERO = Operation(0x5D)
	OP_MOVE2DZERO    = Operation(0x5E)
	OP_UNPACKSN      = Operation(0x63)
	OP_POSTNORMSN    = Operation(0x6C)
	OP_ROUNDSN       = Operation(0x6D)
	OP_LDINF         = Operation(0x71)
	OP_FMUL          = Operation(0x72)
	OP_CFLERR        = Operation(0x73)
	OP_CRCWORD       = Operation(0x74)
	OP_CRCBYTE       = Operation(0x75)
	OP_BITCNT        = Operation(0x76)
	OP_BITREVWORD    = Operation(0x77)
	OP_BITREVNBITS   = Operation(0x78)
	OP_POP           = Operation(0x79)
	OP_TIMERDISABLEH = Operation(0x7A)
	OP_TIMERDISABLEL = Operation(0x7B)
	OP_TIMERENABLEH  = Operation(0x7C)
	OP_TIMERENABLEL  = Operation(0x7D)
	OP_LDMEMSTARTVAL = Operation(0x7E)
	OP_WSUBDB        = Operation(0x81)
	OP_FPLDNLDBI     = Operation(0x82)
	OP_FPCHKERR      = Operation(0x83)
	OP_FPSTNLDB      = Operation(0x84)
	OP_FPLDNLSNI     = Operation(0x86)
	OP_FPADD         = Operation(0x87)
	OP_FPSTNLSN      = Operation(0x88)
	OP_FPSUB         = Operation(0x89)
	OP_FPLDNLDB      = Operation(0x8A)
	OP_FPMUL         = Operation(0x8B)
	OP_FPDIV         = Operation(0x8C)
	OP_FPLDNLSN      = Operation(0x8E)
	OP_FPREMFIRST    = Operation(0x8F)
	OP_FPREMSTEP     = Operation(0x90)
	OP_FPNAN         = Operation(0x91)
	OP_FPORDERED     = Operation(0x92)
	OP_FPNOTFINITE   = Operation(0x93)
	OP_FPGT          = Operation(0x94)
	OP_FPEQ          = Operation(0x95)
	OP_FPI32TOR32    = Operation(0x96)
	OP_FPI32TOR64    = Operation(0x98)
	OP_FPB32TOR64    = Operation(0x9A)
	OP_FPTESTERR     = Operation(0x9C)
	OP_FPRTOI32      = Operation(0x9D)
	OP_FPSTNLI32     = Operation(0x9E)
	OP_FPLDZEROSN    = Operation(0x9F)
	OP_FPLDZERODB    = Operation(0xA0)
	OP_FPINT         = Operation(0xA1)
	OP_FPDUP         = Operation(0xA3)
	OP_FPREV         = Operation(0xA4)
	OP_FPLDNLADDDB   = Operation(0xA6)
	OP_FPLDNLMULDB   = Operation(0xA8)
	OP_FPLDNLADDSN   = Operation(0xAA)
	OP_FPENTRY       = Operation(0xAB)
	OP_FPLDNLMULSN   = Operation(0xAC)
	OP_BREAK         = Operation(0xB1)
	OP_CLRJ0BREAK    = Operation(0xB2)
	OP_SETJ0BREAK    = Operation(0xB3)
	OP_TESTJ0BREAK   = Operation(0xB4)
	OP_LDDEVID       = Operation(0x17C) // Assembler encoding of lddevid.
	OP_LDDEVID_EXEC  = Operation(0x17F) // Encoding recognised by the CPU as lddevid.
	OP_START         = Operation(0x1FF)
)

// _operationMnemonics is the assembler mnemonic table for operations.
var _operationMnemonics = []struct {
	name string
	op   Operation
}{
	{"rev", OP_REV},
	{"lb", OP_LB},
	{"bsub", OP_BSUB},
	{"endp", OP_ENDP},
	{"diff", OP_DIFF},
	{"add", OP_ADD},
	{"gcall", OP_GCALL},
	{"in", OP_IN},
	{"prod", OP_PROD},
	{"gt", OP_GT},
	{"wsub", OP_WSUB},
	{"out", OP_OUT},
	{"sub", OP_SUB},
	{"startp", OP_STARTP},
	{"outbyte", OP_OUTBYTE},
	{"outword", OP_OUTWORD},
	{"seterr", OP_SETERR},
	{"resetch", OP_RESETCH},
	{"csub0", OP_CSUB0},
	{"stopp", OP_STOPP},
	{"ladd", OP_LADD},
	{"stlb", OP_STLB},
	{"sthf", OP_STHF},
	{"norm", OP_NORM},
	{"ldiv", OP_LDIV},
	{"ldpi", OP_LDPI},
	{"stlf", OP_STLF},
	{"xdble", OP_XDBLE},
	{"ldpri", OP_LDPRI},
	{"rem", OP_REM},
	{"ret", OP_RET},
	{"lend", OP_LEND},
	{"ldtimer", OP_LDTIMER},
	{"testlds", OP_TESTLDS},
	{"testlde", OP_TESTLDE},
	{"testldd", OP_TESTLDD},
	{"teststs", OP_TESTSTS},
	{"testste", OP_TESTSTE},
	{"teststd", OP_TESTSTD},
	{"testerr", OP_TESTERR},
	{"testpranal", OP_TESTPRANAL},
	{"tin", OP_TIN},
	{"div", OP_DIV},
	{"testhardchan", OP_TESTHARDCHAN},
	{"dist", OP_DIST},
	{"dics", OP_DISC},
	{"diss", OP_DISS},
	{"lmul", OP_LMUL},
	{"not", OP_NOT},
	{"xor", OP_XOR},
	{"bcnt", OP_BCNT},
	{"lshr", OP_LSHR},
	{"lshl", OP_LSHL},
	{"lsum", OP_LSUM},
	{"lsub", OP_LSUB},
	{"runp", OP_RUNP},
	{"xword", OP_XWORD},
	{"sb", OP_SB},
	{"gajw", OP_GAJW},
	{"savel", OP_SAVEL},
	{"saveh", OP_SAVEH},
	{"wcnt", OP_WCNT},
	// The assembler names of 0x40 and 0x41 are swapped relative to their handlers.
	{"shl", OP_SHR},
	{"shr", OP_SHL},
	{"mint", OP_MINT},
	{"alt", OP_ALT},
	{"altwt", OP_ALTWT},
	{"altend", OP_ALTEND},
	{"and", OP_AND},
	{"enbt", OP_ENBT},
	{"enbc", OP_ENBC},
	{"enbs", OP_ENBS},
	{"move", OP_MOVE},
	{"or", OP_OR},
	{"csngl", OP_CSNGL},
	{"ccnt1", OP_CCNT1},
	{"talt", OP_TALT},
	{"ldiff", OP_LDIFF},
	{"sthb", OP_STHB},
	{"taltwt", OP_TALTWT},
	{"sum", OP_SUM},
	{"mul", OP_MUL},
	{"sttimer", OP_STTIMER},
	{"stoperr", OP_STOPERR},
	{"cword", OP_CWORD},
	{"clrhalterr", OP_CLRHALTERR},
	{"sethalterr", OP_SETHALTERR},
	{"testhalterr", OP_TESTHALTERR},
	{"dup", OP_DUP},
	{"move2dinit", OP_MOVE2DINIT},
	{"move2dall", OP_MOVE2DALL},
	{"move2dnonzero", OP_MOVE2DNONZERO},
	{"move2dzero", OP_MOVE2DZERO},
	{"unpacksn", OP_UNPACKSN},
	{"postnormsn", OP_POSTNORMSN},
	{"roundsn", OP_ROUNDSN},
	{"ldinf", OP_LDINF},
	{"fmul", OP_FMUL},
	{"cflerr", OP_CFLERR},
	{"crcword", OP_CRCWORD},
	{"crcbyte", OP_CRCBYTE},
	{"bitcnt", OP_BITCNT},
	{"bitrevword", OP_BITREVWORD},
	{"bitrevnbits", OP_BITREVNBITS},
	{"pop", OP_POP},
	{"timerdisableh", OP_TIMERDISABLEH},
	{"timerdisablel", OP_TIMERDISABLEL},
	{"timerenableh", OP_TIMERENABLEH},
	{"timerenablel", OP_TIMERENABLEL},
	{"ldmemstartval", OP_LDMEMSTARTVAL},
	{"wsubdb", OP_WSUBDB},
	{"fpldnldbi", OP_FPLDNLDBI},
	{"fpchkerr", OP_FPCHKERR},
	{"fpstnldb", OP_FPSTNLDB},
	{"fpldnlsni", OP_FPLDNLSNI},
	{"fpadd", OP_FPADD},
	{"fpstnlsn", OP_FPSTNLSN},
	{"fpsub", OP_FPSUB},
	{"fpldnldb", OP_FPLDNLDB},
	{"fpmul", OP_FPMUL},
	{"fpdiv", OP_FPDIV},
	{"fpldnlsn", OP_FPLDNLSN},
	{"fpremfirst", OP_FPREMFIRST},
	{"fpremstep", OP_FPREMSTEP},
	{"fpnan", OP_FPNAN},
	{"fpordered", OP_FPORDERED},
	{"fpnotfinite", OP_FPNOTFINITE},
	{"fpgt", OP_FPGT},
	{"fpeq", OP_FPEQ},
	{"fpi32tor32", OP_FPI32TOR32},
	{"fpi32tor64", OP_FPI32TOR64},
	{"fpb32tor64", OP_FPB32TOR64},
	{"fptesterr", OP_FPTESTERR},
	{"fprtoi32", OP_FPRTOI32},
	{"fpstnli32", OP_FPSTNLI32},
	{"fpldzerosn", OP_FPLDZEROSN},
	{"fpldzerodb", OP_FPLDZERODB},
	{"fpint", OP_FPINT},
	{"fpdup", OP_FPDUP},
	{"fprev", OP_FPREV},
	{"fpldnladddb", OP_FPLDNLADDDB},
	{"fpldnlmuldb", OP_FPLDNLMULDB},
	{"fpldnladdsn", OP_FPLDNLADDSN},
	{"fpentry", OP_FPENTRY},
	{"fpldnlmulsn", OP_FPLDNLMULSN},
	{"break", OP_BREAK},
	{"clrj0break", OP_CLRJ0BREAK},
	{"setj0break", OP_SETJ0BREAK},
	{"testj0break", OP_TESTJ0BREAK},
	{"lddevid", OP_LDDEVID},
	{"start", OP_START},
}

// Operations iterates the operation mnemonic table in opcode order.
func Operations() iter.Seq2[string, Operation] {
	return func(yield func(string, Operation) bool) {
		for _, m := range _operationMnemonics {
			if !yield(m.name, m.op) {
				return
			}
		}
	}
}

// Directs iterates the direct function mnemonic table in opcode order.
func Directs() iter.Seq2[string, Direct] {
	return func(yield func(string, Direct) bool) {
		for direct := DIRECT_J; direct <= DIRECT_OPR; direct++ {
			if !yield(direct.String(), direct) {
				return
			}
		}
	}
}

var _operationKnown = func() (known map[Operation]bool) {
	known = map[Operation]bool{
		OP_LDDEVID_EXEC: true,
		OP_START:        true,
	}
	for _, m := range _operationMnemonics {
		if m.op < OPERATION_TABLE_SIZE {
			known[m.op] = true
		}
	}
	return
}()

// Known returns true if the CPU has a handler for the operation.
func (op Operation) Known() bool {
	return _operationKnown[op]
}

// String returns the mnemonic of the operation.
func (op Operation) String() string {
	if op == OP_LDDEVID_EXEC {
		return "lddevid"
	}
	for name, o := range Operations() {
		if o == op {
			return name
		}
	}

	return fmt.Sprintf("opr#%x", int(op))
}
