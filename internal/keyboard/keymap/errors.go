package keymap

import "github.com/btcsuite/goleveldb/leveldb/errors"

var (
	errInvalidLayerCount  = errors.New("keymap: fewer than MinLayers layers")
	errLayerHoldNotOnBase = errors.New("keymap: layer-hold code outside layer 0")
)
