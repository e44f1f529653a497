package zmachine

// v3Handlers wires every implemented opcode to its (operand-count class,
// number) key. Opcode numbers reused across classes (e.g. OP2:1 and
// VAR:1 both exist independently) are kept disjoint by opKey.
var v3Handlers = map[opKey]handlerFunc{
	// 2OP
	{OP2, 1}:  opJe,
	{OP2, 2}:  opJl,
	{OP2, 3}:  opJg,
	{OP2, 4}:  opDecChk,
	{OP2, 5}:  opIncChk,
	{OP2, 6}:  opJin,
	{OP2, 7}:  opTest,
	{OP2, 8}:  opOr,
	{OP2, 9}:  opAnd,
	{OP2, 10}: opTestAttr,
	{OP2, 11}: opSetAttr,
	{OP2, 12}: opClearAttr,
	{OP2, 13}: opStore,
	{OP2, 14}: opInsertObj,
	{OP2, 15}: opLoadw,
	{OP2, 16}: opLoadb,
	{OP2, 17}: opGetProp,
	{OP2, 18}: opGetPropAddr,
	{OP2, 19}: opGetNextProp,
	{OP2, 20}: opAdd,
	{OP2, 21}: opSub,
	{OP2, 22}: opMul,
	{OP2, 23}: opDiv,
	{OP2, 24}: opMod,

	// 1OP
	{OP1, 0}:  opJz,
	{OP1, 1}:  opGetSibling,
	{OP1, 2}:  opGetChild,
	{OP1, 3}:  opGetParent,
	{OP1, 4}:  opGetPropLen,
	{OP1, 5}:  opInc,
	{OP1, 6}:  opDec,
	{OP1, 7}:  opPrintAddr,
	{OP1, 9}:  opRemoveObj,
	{OP1, 10}: opPrintObj,
	{OP1, 11}: opRet,
	{OP1, 12}: opJump,
	{OP1, 13}: opPrintPaddr,
	{OP1, 14}: opLoad,
	{OP1, 15}: opNot,

	// 0OP
	{OP0, 0}:  opRtrue,
	{OP0, 1}:  opRfalse,
	{OP0, 2}:  opPrint,
	{OP0, 3}:  opPrintRet,
	{OP0, 4}:  opNop,
	{OP0, 5}:  opSave,
	{OP0, 6}:  opRestore,
	{OP0, 7}:  opRestart,
	{OP0, 8}:  opRetPopped,
	{OP0, 9}:  opPop,
	{OP0, 10}: opQuit,
	{OP0, 11}: opNewLine,
	{OP0, 12}: opShowStatus,
	{OP0, 13}: opVerify,
	{OP0, 15}: opPiracy,

	// VAR
	{VAR, 0}:  opCall,
	{VAR, 1}:  opStorew,
	{VAR, 2}:  opStoreb,
	{VAR, 3}:  opPutProp,
	{VAR, 4}:  opSread,
	{VAR, 5}:  opPrintChar,
	{VAR, 6}:  opPrintNum,
	{VAR, 7}:  opRandom,
	{VAR, 8}:  opPush,
	{VAR, 9}:  opPull,
	{VAR, 10}: opSplitWindow,
	{VAR, 11}: opSetWindow,
	{VAR, 19}: opOutputStream,
	{VAR, 20}: opInputStream,
	{VAR, 21}: opSoundEffect,
}
