package main

import (
	"flag"
	"fmt"

	"github.com/jafow/quinn"
)

var message string

func main() {
	flag.StringVar(&message, "message", "hello from the client", "payload to send on a client-opened uni stream")
	flag.Parse()

	params := &quicstream.TransportParameters{
		InitialMaxData:                 1 << 20,
		InitialMaxStreamsBidi:          16,
		InitialMaxStreamsUni:           16,
		InitialMaxStreamDataBidiLocal:  1 << 16,
		InitialMaxStreamDataBidiRemote: 1 << 16,
		InitialMaxStreamDataUni:        1 << 16,
	}

	cfg := func(side quicstream.Side) quicstream.StreamManagerConfig {
		return quicstream.StreamManagerConfig{
			Side:                side,
			MaxRemoteBidi:       16,
			MaxRemoteUni:        16,
			SendWindow:          1 << 20,
			ReceiveWindow:       1 << 20,
			StreamReceiveWindow: 1 << 16,
		}
	}

	client := quicstream.NewStreamManager(cfg(quicstream.SideClient))
	server := quicstream.NewStreamManager(cfg(quicstream.SideServer))
	client.SetParams(params)
	server.SetParams(params)

	id, ok := client.Open(params, quicstream.DirUni)
	if !ok {
		fmt.Println("client has no credit to open a uni stream")
		return
	}

	if _, err := client.Write(id, []byte(message)); err != nil {
		fmt.Println("write failed:", err)
		return
	}
	if err := client.Finish(id); err != nil {
		fmt.Println("finish failed:", err)
		return
	}

	clientSide, _, _, serverInbox := quicstream.NewPipe()

	var out []byte
	out, metas := client.WriteStreamFrames(out, 1500)
	fmt.Printf("client emitted %d bytes across %d STREAM frame(s)\n", len(out), len(metas))
	if err := clientSide.Send(out); err != nil {
		fmt.Println("send failed:", err)
		return
	}

	for _, packet := range *serverInbox {
		buf := packet
		for len(buf) > 0 {
			frame, rest := decodeOneStreamFrame(buf)
			transmit, err := server.Received(frame)
			if err != nil {
				fmt.Println("server rejected frame:", err)
				return
			}
			if bool(transmit) {
				fmt.Println("server wants to send MAX_DATA")
			}
			buf = rest
		}
	}

	for {
		ev, ok := server.Poll()
		if !ok {
			break
		}
		fmt.Printf("server event: %+v\n", ev)
	}

	readBuf := make([]byte, 256)
	res, ok, err := server.Read(id, readBuf)
	if err != nil {
		fmt.Println("read failed:", err)
		return
	}
	if ok {
		fmt.Printf("server read %q\n", string(readBuf[:res.Len]))
	}
	if _, ok, _ := server.Read(id, readBuf); !ok {
		fmt.Println("stream fully drained")
	}
}

// decodeOneStreamFrame is a demo-only decoder for the single frame
// shape WriteStreamFrames emits (type byte with OFF/LEN/FIN bits,
// varint stream id, optional varint offset, varint length, payload).
// A real endpoint dispatches on the frame type byte across the whole
// wire-frame set; this program only ever sends STREAM frames.
func decodeOneStreamFrame(buf []byte) (quicstream.StreamFrame, []byte) {
	typ := buf[0]
	buf = buf[1:]
	id, n := readVarintDemo(buf)
	buf = buf[n:]
	var offset uint64
	if typ&0x04 != 0 {
		offset, n = readVarintDemo(buf)
		buf = buf[n:]
	}
	length, n := readVarintDemo(buf)
	buf = buf[n:]
	data := buf[:length]
	buf = buf[length:]
	return quicstream.StreamFrame{
		Id:     quicstream.StreamId(id),
		Offset: offset,
		Fin:    typ&0x01 != 0,
		Data:   data,
	}, buf
}

func readVarintDemo(buf []byte) (uint64, int) {
	n := 1 << (buf[0] >> 6)
	v := uint64(buf[0] & 0x3f)
	for i := 1; i < n; i++ {
		v = v<<8 | uint64(buf[i])
	}
	return v, n
}
